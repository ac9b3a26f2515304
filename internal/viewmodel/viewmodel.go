// Package viewmodel derives the displayed project list from the catalog and
// the three independent UI inputs: complexity filter, search query and sort.
package viewmodel

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
)

// Filter is a complexity level or All.
type Filter string

const All Filter = "All"

// Filters lists the filter options in display order.
var Filters = []Filter{All, Filter(catalog.Beginner), Filter(catalog.Intermediate), Filter(catalog.Advanced)}

// ParseFilter accepts a level name in any case. Anything else is All.
func ParseFilter(s string) Filter {
	if c, ok := catalog.ParseComplexity(s); ok {
		return Filter(c)
	}
	return All
}

func (f Filter) matches(p catalog.Project) bool {
	return f == All || f == "" || catalog.Complexity(f) == p.Complexity
}

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	Recommended     SortKey = "recommended"
	MostPopular     SortKey = "popular"
	RecentlyUpdated SortKey = "recent"
	TimeRequired    SortKey = "time"
)

// SortKeys lists the sort options in display order.
var SortKeys = []SortKey{Recommended, MostPopular, RecentlyUpdated, TimeRequired}

// Label is the option text shown in the sort control.
func (k SortKey) Label() string {
	switch k {
	case MostPopular:
		return "Most Popular"
	case RecentlyUpdated:
		return "Recently Updated"
	case TimeRequired:
		return "Time Required"
	default:
		return "Recommended"
	}
}

// ParseSort accepts the short keys and the display labels in any case.
// Anything else is Recommended.
func ParseSort(s string) SortKey {
	norm := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch norm {
	case "popular", "mostpopular":
		return MostPopular
	case "recent", "recentlyupdated":
		return RecentlyUpdated
	case "time", "timerequired":
		return TimeRequired
	default:
		return Recommended
	}
}

// Selection is the complete input of Apply.
type Selection struct {
	Filter Filter
	Query  string
	Sort   SortKey
}

// Apply returns the projects satisfying the selection, in the order of its
// sort key. The input slice is not modified. The result is never nil.
func Apply(projects []catalog.Project, sel Selection) []catalog.Project {
	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(sel.Query))

	out := make([]catalog.Project, 0, len(projects))
	for _, p := range projects {
		if !sel.Filter.matches(p) {
			continue
		}
		if query != "" && !matchesQuery(folder, p, query) {
			continue
		}
		out = append(out, p)
	}

	switch sel.Sort {
	case MostPopular:
		slices.SortStableFunc(out, func(a, b catalog.Project) int {
			return cmp.Compare(b.PopularityScore(), a.PopularityScore())
		})
	case RecentlyUpdated:
		slices.SortStableFunc(out, func(a, b catalog.Project) int {
			return b.UpdatedAt().Compare(a.UpdatedAt())
		})
	case TimeRequired:
		slices.SortStableFunc(out, func(a, b catalog.Project) int {
			return cmp.Compare(NormalizedDays(a.Time), NormalizedDays(b.Time))
		})
	}
	return out
}

func matchesQuery(folder cases.Caser, p catalog.Project, query string) bool {
	if strings.Contains(folder.String(p.Name), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(folder.String(tag), query) {
			return true
		}
	}
	return false
}

// defaultDays is used for buckets without a leading number.
const defaultDays = 7

// NormalizedDays turns a free-text time bucket into a comparable number:
// the leading integer times 1 for days, 7 for weeks and 30 for anything else.
func NormalizedDays(bucket string) int {
	s := strings.TrimSpace(bucket)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return defaultDays
	}
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "day"):
		return n
	case strings.Contains(lower, "week"):
		return n * 7
	default:
		return n * 30
	}
}
