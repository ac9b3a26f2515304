package viewmodel

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
)

func intp(v int) *int { return &v }

func datep(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func names(projects []catalog.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func TestApplyFilterByComplexity(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "Alpha", Complexity: catalog.Beginner, Time: "1 week"},
		{ID: 2, Name: "Beta", Complexity: catalog.Advanced, Time: "6+ weeks"},
	}
	got := Apply(projects, Selection{Filter: ParseFilter("Advanced")})
	if want := []string{"Beta"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Apply() = %v, want %v", names(got), want)
	}
}

func TestApplyQuery(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "Real-Time Chat App", Complexity: catalog.Advanced, Tags: catalog.StringList{"WebSockets"}},
		{ID: 2, Name: "Blog Application", Complexity: catalog.Intermediate, Tags: catalog.StringList{"CMS"}},
		{ID: 3, Name: "Shop", Complexity: catalog.Advanced, Tags: catalog.StringList{"Payments", "cms-lite"}},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "chat", want: []string{"Real-Time Chat App"}},
		{query: "CHAT", want: []string{"Real-Time Chat App"}},
		{query: "  blog  ", want: []string{"Blog Application"}},
		{query: "cms", want: []string{"Blog Application", "Shop"}},
		{query: "", want: []string{"Real-Time Chat App", "Blog Application", "Shop"}},
		{query: "nothing", want: []string{}},
	}
	for _, tc := range tests {
		got := Apply(projects, Selection{Filter: All, Query: tc.query})
		if !reflect.DeepEqual(names(got), tc.want) {
			t.Fatalf("query %q = %v, want %v", tc.query, names(got), tc.want)
		}
	}
}

func TestApplyFilterAndQueryCombine(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "Blog Application", Complexity: catalog.Intermediate},
		{ID: 2, Name: "Blog Engine", Complexity: catalog.Advanced},
	}
	got := Apply(projects, Selection{Filter: Filter(catalog.Advanced), Query: "blog"})
	if want := []string{"Blog Engine"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Apply() = %v, want %v", names(got), want)
	}
}

func TestApplyEmptyResultIsNotNil(t *testing.T) {
	t.Parallel()

	got := Apply(nil, Selection{Query: "x"})
	if got == nil || len(got) != 0 {
		t.Fatalf("Apply(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestApplySortTimeRequired(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "two-weeks", Time: "2 weeks"},
		{ID: 2, Name: "days", Time: "1-2 days"},
		{ID: 3, Name: "six-plus", Time: "6+ weeks"},
	}
	got := Apply(projects, Selection{Sort: TimeRequired})
	if want := []string{"days", "two-weeks", "six-plus"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Apply() = %v, want %v", names(got), want)
	}
}

func TestApplySortMostPopularTreatsMissingAsZero(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "none-a"},
		{ID: 2, Name: "ten", Popularity: intp(10)},
		{ID: 3, Name: "none-b"},
		{ID: 4, Name: "ninety", Popularity: intp(90)},
		{ID: 5, Name: "zero", Popularity: intp(0)},
	}
	got := Apply(projects, Selection{Sort: MostPopular})
	if want := []string{"ninety", "ten", "none-a", "none-b", "zero"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Apply() = %v, want %v", names(got), want)
	}
}

func TestApplySortRecentlyUpdatedTreatsMissingAsEpoch(t *testing.T) {
	t.Parallel()

	projects := []catalog.Project{
		{ID: 1, Name: "missing"},
		{ID: 2, Name: "old", LastUpdated: datep(2023, time.May, 1)},
		{ID: 3, Name: "new", LastUpdated: datep(2025, time.May, 1)},
		{ID: 4, Name: "pre-epoch", LastUpdated: datep(1960, time.January, 1)},
	}
	got := Apply(projects, Selection{Sort: RecentlyUpdated})
	if want := []string{"new", "old", "missing", "pre-epoch"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("Apply() = %v, want %v", names(got), want)
	}
}

func TestApplyRecommendedKeepsCatalogOrder(t *testing.T) {
	t.Parallel()

	store, err := catalog.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	all := store.Projects()
	got := Apply(all, Selection{Filter: All, Sort: Recommended})
	if !reflect.DeepEqual(names(got), names(all)) {
		t.Fatalf("Apply() = %v, want catalog order", names(got))
	}
}

func TestApplyIsPureAndIdempotent(t *testing.T) {
	t.Parallel()

	store, err := catalog.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	all := store.Projects()
	before := names(all)

	for _, f := range Filters {
		for _, k := range SortKeys {
			for _, q := range []string{"", "app", "real", "zzz"} {
				sel := Selection{Filter: f, Query: q, Sort: k}
				first := Apply(all, sel)
				second := Apply(all, sel)
				if !reflect.DeepEqual(first, second) {
					t.Fatalf("Apply(%+v) not idempotent", sel)
				}
				for _, p := range first {
					if f != All && p.Complexity != catalog.Complexity(f) {
						t.Fatalf("Apply(%+v) kept %q with complexity %q", sel, p.Name, p.Complexity)
					}
				}
				if len(first) > len(all) {
					t.Fatalf("Apply(%+v) grew the catalog", sel)
				}
			}
		}
	}
	if !reflect.DeepEqual(names(all), before) {
		t.Fatalf("input reordered: %v", names(all))
	}
}

func TestNormalizedDays(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"2 weeks":   14,
		"1-2 days":  1,
		"6+ weeks":  42,
		"4-6 weeks": 28,
		"1 week":    7,
		"3 months":  90,
		"  5 days ": 5,
		"sometime":  7,
		"":          7,
	}
	for bucket, want := range tests {
		if got := NormalizedDays(bucket); got != want {
			t.Fatalf("NormalizedDays(%q) = %d, want %d", bucket, got, want)
		}
	}
}

func TestParseFilterAndSort(t *testing.T) {
	t.Parallel()

	if got := ParseFilter("intermediate"); got != Filter(catalog.Intermediate) {
		t.Fatalf("ParseFilter(intermediate) = %q", got)
	}
	if got := ParseFilter("expert"); got != All {
		t.Fatalf("ParseFilter(expert) = %q, want All", got)
	}
	sorts := map[string]SortKey{
		"":                Recommended,
		"popular":         MostPopular,
		"Most Popular":    MostPopular,
		"RecentlyUpdated": RecentlyUpdated,
		"time":            TimeRequired,
		"Time Required":   TimeRequired,
		"alphabetical":    Recommended,
		"recommended":     Recommended,
	}
	for in, want := range sorts {
		if got := ParseSort(in); got != want {
			t.Fatalf("ParseSort(%q) = %q, want %q", in, got, want)
		}
	}
	if MostPopular.Label() != "Most Popular" || SortKey("x").Label() != "Recommended" {
		t.Fatalf("unexpected labels")
	}
}
