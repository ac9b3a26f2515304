package server

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/chart"
	"github.com/Zachkp/portfolio-guide/internal/modal"
	"github.com/Zachkp/portfolio-guide/internal/scrollspy"
	"github.com/Zachkp/portfolio-guide/internal/theme"
	"github.com/Zachkp/portfolio-guide/internal/viewmodel"
)

// Option is a selectable control value rendered as a link.
type Option struct {
	Value  string
	Label  string
	URL    string
	Active bool
}

type NavItem struct {
	Section string
	Label   string
	Active  bool
}

type SkillCard struct {
	Skill    catalog.Skill
	Projects []catalog.Project
}

type TechniqueCard struct {
	Technique catalog.Technique
	Skills    []catalog.Skill
}

// ModalView is the open project dialog.
type ModalView struct {
	Project  catalog.Project
	Days     int
	CloseURL string
}

// LegendItem toggles one chart series.
type LegendItem struct {
	Level  catalog.Complexity
	Count  int
	Hidden bool
	URL    string
}

// Page is everything the index template renders.
type Page struct {
	Theme        theme.Mode
	Selection    viewmodel.Selection
	Filters      []Option
	Sorts        []Option
	Projects     []catalog.Project
	Total        int
	Skills       []SkillCard
	Techniques   []TechniqueCard
	Modal        *ModalView
	BodyOverflow string
	Nav          []NavItem
	Active       string
	Hidden       []catalog.Complexity
	Legend       []LegendItem
	ChartURL     string
	ReturnPath   string
}

// PageQuery is the URL-carried part of the selection state.
type PageQuery struct {
	Filter    string `form:"filter"`
	Query     string `form:"q"`
	Sort      string `form:"sort"`
	ProjectID int    `form:"project"`
	Hide      string `form:"hide"`
}

// Selection parses the controls; unknown values fall back to defaults.
func (q PageQuery) Selection() viewmodel.Selection {
	return viewmodel.Selection{
		Filter: viewmodel.ParseFilter(q.Filter),
		Query:  q.Query,
		Sort:   viewmodel.ParseSort(q.Sort),
	}
}

// nominalOffsets approximate section positions for the first render, before
// the browser reports measured ones.
var nominalOffsets = map[string]float64{
	"intro":         0,
	"about-project": 600,
	"skills":        1400,
	"projects":      2200,
	"timeline":      3400,
	"advanced":      4000,
	"showcase":      4800,
}

const nominalViewport = 900

// NominalSections returns the page sections at their nominal offsets.
func NominalSections() []scrollspy.Section {
	out := make([]scrollspy.Section, len(PageSections))
	for i, id := range PageSections {
		out[i] = scrollspy.Section{ID: id, Top: nominalOffsets[id]}
	}
	return out
}

// BuildPage derives the page model. It reads store and never writes it.
func BuildPage(store *catalog.Store, q PageQuery, mode theme.Mode) Page {
	sel := q.Selection()
	projects := viewmodel.Apply(store.Projects(), sel)
	hidden := ParseHidden(q.Hide)

	p := Page{
		Theme:        mode,
		Selection:    sel,
		Filters:      filterOptions(q, sel),
		Sorts:        sortOptions(q, sel),
		Projects:     projects,
		Total:        len(store.Projects()),
		BodyOverflow: "auto",
		Hidden:       hidden,
		Legend:       legend(store.Projects(), q, hidden),
		ChartURL:     chartURL(mode, hidden),
		ReturnPath:   indexURL(q),
	}

	for _, sk := range store.Skills() {
		p.Skills = append(p.Skills, SkillCard{Skill: sk, Projects: store.RelatedProjects(sk)})
	}
	for _, t := range store.Techniques() {
		p.Techniques = append(p.Techniques, TechniqueCard{Technique: t, Skills: store.RelatedSkills(t)})
	}

	body := &modal.Overflow{Value: p.BodyOverflow}
	dialog := modal.New(body)
	if q.ProjectID != 0 {
		if proj, ok := store.Project(q.ProjectID); ok {
			dialog.Open(proj)
		}
	}
	if proj, ok := dialog.Current(); ok {
		closeQ := q
		closeQ.ProjectID = 0
		p.Modal = &ModalView{
			Project:  proj,
			Days:     viewmodel.NormalizedDays(proj.Time),
			CloseURL: indexURL(closeQ),
		}
	}
	p.BodyOverflow = body.Value

	tracker := scrollspy.NewTracker(NominalSections(), nil)
	p.Active = tracker.Mount(0, nominalViewport)
	for _, link := range NavLinks {
		p.Nav = append(p.Nav, NavItem{Section: link.Section, Label: link.Label, Active: link.Section == p.Active})
	}
	return p
}

// ParseHidden reads a comma-separated list of complexity levels.
func ParseHidden(s string) []catalog.Complexity {
	var out []catalog.Complexity
	for _, part := range strings.Split(s, ",") {
		c, ok := catalog.ParseComplexity(part)
		if !ok || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func joinLevels(levels []catalog.Complexity) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	if q.Filter != "" && viewmodel.ParseFilter(q.Filter) != viewmodel.All {
		v.Set("filter", string(viewmodel.ParseFilter(q.Filter)))
	}
	if strings.TrimSpace(q.Query) != "" {
		v.Set("q", q.Query)
	}
	if s := viewmodel.ParseSort(q.Sort); s != viewmodel.Recommended {
		v.Set("sort", string(s))
	}
	if q.ProjectID != 0 {
		v.Set("project", strconv.Itoa(q.ProjectID))
	}
	if q.Hide != "" {
		if h := joinLevels(ParseHidden(q.Hide)); h != "" {
			v.Set("hide", h)
		}
	}
	return v
}

func indexURL(q PageQuery) string {
	if enc := q.values().Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}

func filterOptions(q PageQuery, sel viewmodel.Selection) []Option {
	out := make([]Option, 0, len(viewmodel.Filters))
	for _, f := range viewmodel.Filters {
		next := q
		next.Filter = string(f)
		next.ProjectID = 0
		out = append(out, Option{
			Value:  string(f),
			Label:  string(f),
			URL:    indexURL(next),
			Active: sel.Filter == f,
		})
	}
	return out
}

func sortOptions(q PageQuery, sel viewmodel.Selection) []Option {
	out := make([]Option, 0, len(viewmodel.SortKeys))
	for _, k := range viewmodel.SortKeys {
		next := q
		next.Sort = string(k)
		next.ProjectID = 0
		out = append(out, Option{
			Value:  string(k),
			Label:  k.Label(),
			URL:    indexURL(next),
			Active: sel.Sort == k,
		})
	}
	return out
}

func legend(projects []catalog.Project, q PageQuery, hidden []catalog.Complexity) []LegendItem {
	series := chart.Plot(projects)
	out := make([]LegendItem, 0, len(series))
	for _, s := range series {
		isHidden := slices.Contains(hidden, s.Level)
		var toggled []catalog.Complexity
		for _, h := range hidden {
			if h != s.Level {
				toggled = append(toggled, h)
			}
		}
		if !isHidden {
			toggled = append(toggled, s.Level)
		}
		next := q
		next.Hide = joinLevels(toggled)
		next.ProjectID = 0
		out = append(out, LegendItem{
			Level:  s.Level,
			Count:  len(s.Points),
			Hidden: isHidden,
			URL:    indexURL(next) + "#timeline",
		})
	}
	return out
}

func chartURL(mode theme.Mode, hidden []catalog.Complexity) string {
	v := url.Values{}
	v.Set("theme", mode.String())
	if len(hidden) > 0 {
		v.Set("hide", joinLevels(hidden))
	}
	return "/chart.svg?" + v.Encode()
}
