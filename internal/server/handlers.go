package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-guide/internal/analytics"
	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/chart"
	"github.com/Zachkp/portfolio-guide/internal/logger"
	"github.com/Zachkp/portfolio-guide/internal/scrollspy"
	"github.com/Zachkp/portfolio-guide/internal/theme"
	"github.com/Zachkp/portfolio-guide/internal/viewmodel"
)

var errProjectNotFound = errors.New("project not found")

// Handlers serves the guide's pages, fragments, chart and JSON API.
type Handlers struct {
	store   *catalog.Store
	themes  *theme.Store
	charts  *chart.Renderer
	tracker *analytics.Tracker
	log     *logger.Logger
}

// NewHandlers wires the handlers. tracker may be nil.
func NewHandlers(store *catalog.Store, themes *theme.Store, charts *chart.Renderer, tracker *analytics.Tracker, log *logger.Logger) *Handlers {
	return &Handlers{store: store, themes: themes, charts: charts, tracker: tracker, log: log}
}

func readQuery(c *gin.Context) PageQuery {
	id, _ := strconv.Atoi(strings.TrimSpace(c.Query("project")))
	return PageQuery{
		Filter:    c.Query("filter"),
		Query:     c.Query("q"),
		Sort:      c.Query("sort"),
		ProjectID: id,
		Hide:      c.Query("hide"),
	}
}

func pageData(p Page) gin.H {
	return gin.H{
		"title":    SiteTitle,
		"page":     p,
		"content":  siteContent,
		"features": AboutFeatures,
		"howTo":    HowToSteps,
		"tips":     ShowcaseTips,
	}
}

// Index renders the whole guide.
func (h *Handlers) Index(c *gin.Context) {
	p := BuildPage(h.store, readQuery(c), h.themes.Load(c.Request))
	if p.Modal != nil {
		h.projectViewed(c, p.Modal.Project)
	}
	c.HTML(http.StatusOK, "index.html", pageData(p))
}

// Projects renders the filtered grid fragment.
func (h *Handlers) Projects(c *gin.Context) {
	q := readQuery(c)
	q.ProjectID = 0
	p := BuildPage(h.store, q, h.themes.Load(c.Request))
	c.HTML(http.StatusOK, "projects.html", pageData(p))
}

// Modal renders the detail dialog fragment for one project.
func (h *Handlers) Modal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondPage(c, http.StatusNotFound, errProjectNotFound.Error())
		return
	}
	q := readQuery(c)
	q.ProjectID = id
	p := BuildPage(h.store, q, h.themes.Load(c.Request))
	if p.Modal == nil {
		respondPage(c, http.StatusNotFound, errProjectNotFound.Error())
		return
	}
	h.projectViewed(c, p.Modal.Project)
	c.HTML(http.StatusOK, "modal.html", pageData(p))
}

func (h *Handlers) projectViewed(c *gin.Context, p catalog.Project) {
	if h.tracker != nil {
		h.tracker.ProjectViewed(c, p)
	}
}

// Chart renders the bubble chart in the requested format.
func (h *Handlers) Chart(format chart.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := h.themes.Load(c.Request)
		if t := c.Query("theme"); t != "" {
			mode = theme.Parse(t)
		}
		inst, err := h.charts.Acquire(h.store.Projects(), chart.Options{
			Dark:   mode.IsDark(),
			Hidden: ParseHidden(c.Query("hide")),
			Format: format,
			Labels: c.Query("labels") == "1",
		})
		if err != nil {
			h.log.Error("render chart", "error", err, "format", string(format))
			_ = c.Error(err)
			respondPage(c, http.StatusInternalServerError, "Failed to render chart")
			return
		}
		defer inst.Close()
		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, inst.ContentType(), inst.Bytes())
	}
}

// ToggleTheme flips the stored theme and sends the browser back.
func (h *Handlers) ToggleTheme(c *gin.Context) {
	mode := h.themes.Toggle(c.Writer, c.Request)
	h.log.Debug("theme toggled", "theme", mode.String())
	c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return")))
}

// safeReturn keeps redirects on this site.
func safeReturn(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return u.RequestURI()
}

func (h *Handlers) Healthcheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok", "projects": len(h.store.Projects())})
}

// APIProjects lists projects for the same filter, q and sort parameters as
// the page.
func (h *Handlers) APIProjects(c *gin.Context) {
	sel := readQuery(c).Selection()
	projects := viewmodel.Apply(h.store.Projects(), sel)
	RespondOK(c, gin.H{
		"filter":   sel.Filter,
		"query":    strings.TrimSpace(sel.Query),
		"sort":     sel.Sort,
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handlers) APIProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("project id must be an integer"))
		return
	}
	p, ok := h.store.Project(id)
	if !ok {
		RespondError(c, http.StatusNotFound, "not_found", errProjectNotFound)
		return
	}
	RespondOK(c, gin.H{
		"project": p,
		"days":    viewmodel.NormalizedDays(p.Time),
		"point":   chart.PointFor(p),
	})
}

func (h *Handlers) APISkills(c *gin.Context) {
	skills := h.store.Skills()
	RespondOK(c, gin.H{"count": len(skills), "skills": skills})
}

func (h *Handlers) APITechniques(c *gin.Context) {
	techniques := h.store.Techniques()
	RespondOK(c, gin.H{"count": len(techniques), "techniques": techniques})
}

func (h *Handlers) APIChart(c *gin.Context) {
	RespondOK(c, gin.H{
		"title":  "Project Complexity vs. Time (Weeks)",
		"series": chart.Plot(h.store.Projects()),
	})
}

// APIActiveSection resolves the navigation highlight for a scroll position.
// Offsets are "id:top" pairs in document order; omitted offsets use the
// nominal layout.
func (h *Handlers) APIActiveSection(c *gin.Context) {
	y, err := parseFloatParam(c, "y", 0)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_scroll", err)
		return
	}
	vh, err := parseFloatParam(c, "vh", nominalViewport)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_viewport", err)
		return
	}
	sections, err := parseOffsets(c.Query("offsets"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_offsets", err)
		return
	}
	RespondOK(c, gin.H{
		"active":    scrollspy.Active(sections, y, vh),
		"threshold": y + vh/3,
		"sections":  sections,
	})
}

func parseFloatParam(c *gin.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}

func parseOffsets(raw string) ([]scrollspy.Section, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NominalSections(), nil
	}
	var out []scrollspy.Section
	for _, pair := range strings.Split(raw, ",") {
		id, top, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, errors.New("offsets must be id:top pairs")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(top), 64)
		if err != nil {
			return nil, errors.New("offset for " + id + " must be a number")
		}
		out = append(out, scrollspy.Section{ID: strings.TrimSpace(id), Top: v})
	}
	return out, nil
}

// NotFound answers unknown routes with JSON under /api and HTML elsewhere.
func (h *Handlers) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("no such endpoint"))
		return
	}
	respondPage(c, http.StatusNotFound, "Page not found")
}
