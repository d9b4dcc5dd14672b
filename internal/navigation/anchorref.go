package navigation

import (
	"net/url"
	"strings"

	"swipetree/pkg/lineage"
)

// ParseAnchorRef extracts the anchor from a shareable reference. The
// fragment form "#id=140000" wins over the query form "?id=140000"; a bare
// "id=140000" is also accepted.
func ParseAnchorRef(ref string) (lineage.ID, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fromValues(ref)
	}
	if id, ok := fromValues(u.Fragment); ok {
		return id, true
	}
	if id, ok := fromValues(u.RawQuery); ok {
		return id, true
	}
	if u.Scheme == "" && u.Host == "" {
		return fromValues(u.Path)
	}
	return "", false
}

// AnchorRef renders the fragment reference for id.
func AnchorRef(id lineage.ID) string {
	return "#id=" + url.QueryEscape(string(id))
}

func fromValues(raw string) (lineage.ID, bool) {
	raw = strings.TrimPrefix(raw, "#")
	raw = strings.TrimPrefix(raw, "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(values.Get("id"))
	if id == "" {
		return "", false
	}
	return lineage.ID(id), true
}
