package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Zachkp/portfolio-guide/internal/analytics"
	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/chart"
	"github.com/Zachkp/portfolio-guide/internal/logger"
	"github.com/Zachkp/portfolio-guide/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type RouterConfig struct {
	Log     *logger.Logger
	Catalog *catalog.Store
	Themes  *theme.Store
	Charts  *chart.Renderer

	// Tracker and Admin are nil when analytics is disabled.
	Tracker *analytics.Tracker
	Admin   *analytics.Admin

	AllowedOrigins []string
	ImagesDir      string

	Tracing     bool
	ServiceName string
}

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"add":   func(a, b int) int { return a + b },
}

// Templates parses the embedded page and fragment templates.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Log == nil {
		cfg.Log = logger.NewNop()
	}
	if cfg.Themes == nil {
		cfg.Themes = theme.NewStore(false)
	}
	if cfg.Charts == nil {
		cfg.Charts = chart.NewRenderer()
	}
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(AttachTraceContext())
	r.Use(RequestLogger(cfg.Log))
	if cfg.Tracker != nil {
		r.Use(cfg.Tracker.Middleware())
	}
	r.SetHTMLTemplate(tmpl)

	h := NewHandlers(cfg.Catalog, cfg.Themes, cfg.Charts, cfg.Tracker, cfg.Log)

	r.StaticFS("/static", http.FS(static))
	if cfg.ImagesDir != "" {
		r.Static("/images", cfg.ImagesDir)
	}
	r.GET("/healthcheck", h.Healthcheck)

	r.GET("/", h.Index)
	r.GET("/projects", h.Projects)
	r.GET("/projects/:id/modal", h.Modal)
	r.GET("/chart.svg", h.Chart(chart.SVG))
	r.GET("/chart.png", h.Chart(chart.PNG))
	r.POST("/theme/toggle", h.ToggleTheme)

	api := r.Group("/api")
	api.Use(CORS(cfg.AllowedOrigins))
	{
		api.GET("/projects", h.APIProjects)
		api.GET("/projects/:id", h.APIProject)
		api.GET("/skills", h.APISkills)
		api.GET("/techniques", h.APITechniques)
		api.GET("/chart", h.APIChart)
		api.GET("/active-section", h.APIActiveSection)
	}

	if cfg.Admin != nil {
		cfg.Admin.Register(r)
	}
	r.NoRoute(h.NotFound)
	return r, nil
}
