package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-guide/internal/analytics"
	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/chart"
	"github.com/Zachkp/portfolio-guide/internal/config"
	"github.com/Zachkp/portfolio-guide/internal/logger"
	"github.com/Zachkp/portfolio-guide/internal/observability"
	"github.com/Zachkp/portfolio-guide/internal/server"
	"github.com/Zachkp/portfolio-guide/internal/theme"
)

const retentionInterval = 24 * time.Hour

var serveArgs struct {
	port string
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveArgs.port, "port", "", "listen port (overrides PORT)")
	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if rootArgs.catalog != "" {
		cfg.CatalogPath = rootArgs.catalog
	}
	if serveArgs.port != "" {
		cfg.Port = serveArgs.port
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	gin.SetMode(cfg.GinMode)

	store, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		"source", sourceName(cfg.CatalogPath),
		"projects", len(store.Projects()),
		"skills", len(store.Skills()),
		"techniques", len(store.Techniques()),
	)

	shutdown, err := observability.Init(ctx, observability.Config{
		Enabled:     cfg.TracingEnabled,
		ServiceName: cfg.ServiceName,
		Version:     version,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Warn("tracing shutdown", "error", err)
		}
	}()

	rc := server.RouterConfig{
		Log:            log,
		Catalog:        store,
		Themes:         theme.NewStore(false),
		Charts:         chart.NewRenderer(),
		AllowedOrigins: cfg.AllowedOrigins,
		ImagesDir:      cfg.ImagesDir,
		Tracing:        cfg.TracingEnabled,
		ServiceName:    cfg.ServiceName,
	}

	if cfg.AnalyticsEnabled {
		st, err := analytics.Open(ctx, cfg.AnalyticsDB)
		if err != nil {
			return fmt.Errorf("open analytics: %w", err)
		}
		defer st.Close()

		hasher, err := analytics.NewHasher()
		if err != nil {
			return err
		}
		rc.Tracker = analytics.NewTracker(st, hasher, log)
		defer rc.Tracker.Wait()

		admin, err := analytics.NewAdmin(analytics.AdminConfig{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
			Release:  cfg.Release(),
		}, st, hasher, log)
		switch {
		case errors.Is(err, analytics.ErrAdminDisabled):
			log.Warn("admin dashboard disabled, set ADMIN_PASSWORD to enable it")
		case err != nil:
			return err
		default:
			rc.Admin = admin
		}

		go analytics.RunRetention(ctx, st, cfg.AnalyticsRetention, retentionInterval, log)
	}

	router, err := server.NewRouter(rc)
	if err != nil {
		return err
	}
	return server.NewServer(cfg.Addr(), router, cfg.ShutdownTimeout, log).Run(ctx)
}

func sourceName(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

// openCatalog loads the catalog named by --catalog or CATALOG_PATH.
func openCatalog(ctx context.Context) (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return store, nil
}
