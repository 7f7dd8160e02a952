package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskapi/internal/client"
	"taskapi/internal/task"
)

// NewListCommand prints the remote task list.
func NewListCommand(root *RootOptions) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all tasks from a running service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := serverURL(cmd, root, server)
			if err != nil {
				return err
			}
			tasks, err := client.New(base).List(cmd.Context())
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(tasks, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "service base URL (default from config addr)")
	return cmd
}

// NewAddCommand posts one task given as a JSON argument.
func NewAddCommand(root *RootOptions) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "add <json>",
		Short: "Append a task to a running service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := serverURL(cmd, root, server)
			if err != nil {
				return err
			}
			t, err := task.Parse([]byte(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			added, err := client.New(base).Add(cmd.Context(), t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), added.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "service base URL (default from config addr)")
	return cmd
}
