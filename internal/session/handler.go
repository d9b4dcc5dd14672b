package session

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"swipetree/internal/navigation"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/lineage"
	"swipetree/pkg/platform/httputil"
)

// DefaultAnchor is shown when the client does not name one.
const DefaultAnchor lineage.ID = "100000"

// Handler upgrades GET /ws to a browsing session.
type Handler struct {
	deps     Deps
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket handler. allowedOrigin "*" accepts any
// origin.
func NewHandler(deps Deps, allowedOrigin string) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &Handler{deps: deps, logger: deps.Logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 << 10,
		WriteBufferSize: 4 << 10,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return strings.EqualFold(r.Header.Get("Origin"), allowedOrigin)
		},
	}
	return h
}

// Register registers the websocket route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/ws", h.handleWS)
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	anchor, ok := anchorFromRequest(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid anchor"))
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	sess := New(uuid.NewString(), ws, anchor, h.deps)
	if err := sess.Run(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "session aborted",
			"session_id", sess.ID(),
			"error", err,
		)
	}
}

// anchorFromRequest accepts ?id=, ?ref= (a deep link) or nothing.
func anchorFromRequest(r *http.Request) (lineage.ID, bool) {
	q := r.URL.Query()
	if ref := q.Get("ref"); ref != "" {
		id, ok := navigation.ParseAnchorRef(ref)
		return id, ok && lineage.Valid(id)
	}
	id := strings.TrimSpace(q.Get("id"))
	if id == "" {
		return DefaultAnchor, true
	}
	return lineage.ID(id), lineage.Valid(lineage.ID(id))
}
