package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/string-analyzer/internal/logger"
	"github.com/rcliao/string-analyzer/internal/metrics"
	"github.com/rcliao/string-analyzer/internal/server"
	"github.com/rcliao/string-analyzer/internal/service"
	"github.com/rcliao/string-analyzer/internal/store"
)

var serveFlagKeys = map[string]string{
	"addr":       "server.addr",
	"backend":    "store.backend",
	"log-level":  "log.level",
	"log-json":   "log.json",
	"metrics":    "metrics.enabled",
	"rate-limit": "server.rate_limit",
}

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the HTTP API until interrupted. Records live in memory and are lost on exit.",
		Args:  cobra.NoArgs,
		Run:   runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("backend", store.BackendMemory, "Store backend: memory or sqlite")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().Bool("log-json", false, "Log as JSON")
	cmd.Flags().Bool("metrics", true, "Expose Prometheus metrics")
	cmd.Flags().Float64("rate-limit", 0, "Requests per second across all clients (0 = unlimited)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd, serveFlagKeys)
	if err != nil {
		exitErr("load config", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		exitErr("create logger", err)
	}
	defer log.Sync()

	s, err := store.Open(cfg.Store.Backend)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m := metrics.New()
	svc := service.New(s, m, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("Starting string analyzer",
		logger.FieldAddress, cfg.Server.Addr,
		logger.FieldBackend, cfg.Store.Backend,
	)
	if err := server.New(cfg, svc, m, log).Run(ctx); err != nil {
		exitErr("serve", err)
	}
	log.Info("Server stopped")
}
