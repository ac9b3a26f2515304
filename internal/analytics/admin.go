package analytics

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-guide/internal/logger"
)

// ErrAdminDisabled is returned by NewAdmin in release mode without a password.
var ErrAdminDisabled = errors.New("admin disabled: ADMIN_PASSWORD not set")

const (
	adminCookie       = "admin_token"
	adminCookiePath   = "/admin"
	adminSessionAge   = 24 * 60 * 60
	devAdminPassword  = "admin123"
	exportFilename    = "portfolio-stats.json"
	loginTemplate     = "admin-login.html"
	dashboardTemplate = "admin-dashboard.html"
	errorTemplate     = "error.html"
)

// StatsSource is the read side of the analytics store.
type StatsSource interface {
	Stats(ctx context.Context) (*Stats, error)
}

type AdminConfig struct {
	Username string
	Password string
	// Release disables the development password fallback.
	Release bool
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

// Admin serves the login-protected dashboard.
type Admin struct {
	username string
	password string
	token    string
	secure   bool
	stats    StatsSource
	hasher   *Hasher
	log      *logger.Logger
}

func NewAdmin(cfg AdminConfig, stats StatsSource, hasher *Hasher, log *logger.Logger) (*Admin, error) {
	if cfg.Username == "" {
		cfg.Username = "admin"
	}
	if cfg.Password == "" {
		if cfg.Release {
			return nil, ErrAdminDisabled
		}
		cfg.Password = devAdminPassword
		log.Warn("using default admin password, set ADMIN_PASSWORD")
	}
	token, err := RandomToken()
	if err != nil {
		return nil, err
	}
	log.Info("admin access available", "path", "/admin/login")
	return &Admin{
		username: cfg.Username,
		password: cfg.Password,
		token:    token,
		secure:   cfg.Secure,
		stats:    stats,
		hasher:   hasher,
		log:      log,
	}, nil
}

// Register mounts the admin routes on r.
func (a *Admin) Register(r gin.IRouter) {
	r.GET("/admin/login", a.loginPage)
	r.POST("/admin/login", a.login)
	r.GET("/admin/logout", a.logout)

	g := r.Group("/admin")
	g.Use(a.requireSession())
	g.GET("/dashboard", a.dashboard)
	g.GET("/api/stats", a.statsJSON)
	g.GET("/export/stats", a.export)
}

func (a *Admin) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Admin) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, loginTemplate, gin.H{"title": "Admin Login"})
}

func (a *Admin) login(c *gin.Context) {
	userOK := subtle.ConstantTimeCompare([]byte(c.PostForm("username")), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(a.password)) == 1
	visitor := a.hasher.Hash(c.ClientIP())
	if !userOK || !passOK {
		a.log.Warn("admin login failed", "visitor", visitor)
		c.HTML(http.StatusUnauthorized, loginTemplate, gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, a.token, adminSessionAge, adminCookiePath, "", a.secure, true)
	a.log.Info("admin login", "visitor", visitor)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *Admin) logout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, adminCookiePath, "", a.secure, true)
	a.log.Info("admin logout", "visitor", a.hasher.Hash(c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/login")
}

func (a *Admin) dashboard(c *gin.Context) {
	stats, err := a.stats.Stats(c.Request.Context())
	if err != nil {
		a.log.Error("load admin stats", "error", err)
		c.HTML(http.StatusInternalServerError, errorTemplate, gin.H{
			"title":   "Error",
			"status":  http.StatusInternalServerError,
			"message": "Failed to load statistics",
		})
		return
	}
	c.HTML(http.StatusOK, dashboardTemplate, gin.H{
		"title": "Dashboard",
		"stats": stats,
	})
}

func (a *Admin) statsJSON(c *gin.Context) {
	stats, err := a.stats.Stats(c.Request.Context())
	if err != nil {
		a.log.Error("load admin stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"message": "failed to load statistics",
			"code":    "stats_unavailable",
		}})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *Admin) export(c *gin.Context) {
	stats, err := a.stats.Stats(c.Request.Context())
	if err != nil {
		a.log.Error("export admin stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"message": "failed to load statistics",
			"code":    "stats_unavailable",
		}})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	a.log.Info("admin stats exported", "visitor", a.hasher.Hash(c.ClientIP()))
	c.IndentedJSON(http.StatusOK, stats)
}
