package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskapi/internal/config"
	"taskapi/internal/server"
	"taskapi/internal/store"
	"taskapi/pkg/mq"
)

// NewServeCommand runs the HTTP service until interrupted.
func NewServeCommand(root *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.ConfigPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			logger, err := newLogger(cfg, root.Verbose)
			if err != nil {
				return err
			}

			broker := mq.NewMemory()
			_ = broker.Subscribe(mq.TopicTaskAppended, func(payload []byte) error {
				logger.Debug("task appended", "task", string(payload))
				return nil
			})

			srv := server.New(store.New(), server.Options{
				Logger:       logger,
				Publisher:    broker,
				MaxBodyBytes: cfg.MaxBodyBytes,
				ListCacheTTL: cfg.ListCacheTTL,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				return err
			}
			logger.Info("stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}
