package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"taskapi/internal/client"
	"taskapi/internal/result"
)

// NewExportCommand renders the remote task list to a file.
func NewExportCommand(root *RootOptions) *cobra.Command {
	var (
		server string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks from a running service as json, csv or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := serverURL(cmd, root, server)
			if err != nil {
				return err
			}
			if !slices.Contains(result.Formats, strings.ToLower(format)) {
				return fmt.Errorf("invalid format %q: must be one of %v", format, result.Formats)
			}
			b, err := result.NewExporter(client.New(base)).Export(cmd.Context(), format)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported -> %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "service base URL (default from config addr)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format (json|csv|pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (stdout when empty)")
	return cmd
}
