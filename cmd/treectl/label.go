package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"swipetree/internal/annotation/client"
	"swipetree/internal/annotation/models"
)

var (
	labelName string
	labelDOB  string
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Read or write person labels",
}

var labelGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print the label of a person",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelGet,
}

var labelSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Write the label of a person",
	Args:  cobra.ExactArgs(1),
	RunE:  runLabelSet,
}

func init() {
	labelSetCmd.Flags().StringVar(&labelName, "name", "", "Display name")
	labelSetCmd.Flags().StringVar(&labelDOB, "dob", "", "Date of birth as shown")
	labelCmd.AddCommand(labelGetCmd, labelSetCmd)
	rootCmd.AddCommand(labelCmd)
}

func newClient() *client.Client {
	return client.New(serverURL, client.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func runLabelGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	l, err := newClient().Get(ctx, args[0])
	if err != nil {
		return err
	}
	if l.IsEmpty() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: (no label)\n", l.ID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", l.ID, l.Display())
	return nil
}

func runLabelSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	l := models.Label{ID: args[0], Name: labelName, DOB: labelDOB}
	l.Normalize()
	if err := newClient().Set(ctx, l); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", l.ID)
	return nil
}
