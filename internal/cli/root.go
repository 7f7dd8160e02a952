// Package cli wires the taskapi commands.
package cli

import (
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"

	"taskapi/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the taskapi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "taskapi",
		Short:        "In-memory task list HTTP service",
		Long:         "Serves GET /tasks and POST /tasks over an in-memory, append-only task list.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging (serve only)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

func newLogger(cfg config.Config, verbose bool) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// serverURL returns the --server flag when set, otherwise a URL for the addr
// the config would serve on.
func serverURL(cmd *cobra.Command, root *RootOptions, flagVal string) (string, error) {
	if cmd.Flags().Changed("server") {
		return flagVal, nil
	}
	cfg, err := config.Load(root.ConfigPath)
	if err != nil {
		return "", err
	}
	return baseURL(cfg.Addr), nil
}

func baseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
