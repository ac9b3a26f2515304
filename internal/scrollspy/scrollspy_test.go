package scrollspy

import "testing"

func pageSections() []Section {
	return []Section{
		{ID: "intro", Top: 0},
		{ID: "skills", Top: 800},
		{ID: "projects", Top: 1600},
	}
}

func TestActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sections []Section
		scrollY  float64
		viewport float64
		want     string
	}{
		{name: "threshold equals offset", sections: pageSections(), scrollY: 500, viewport: 900, want: "skills"},
		{name: "top of page", sections: pageSections(), scrollY: 0, viewport: 900, want: "intro"},
		{name: "just short", sections: pageSections(), scrollY: 499, viewport: 900, want: "intro"},
		{name: "deep scroll", sections: pageSections(), scrollY: 5000, viewport: 900, want: "projects"},
		{name: "none qualifies falls back to first", sections: []Section{{ID: "intro", Top: 100}, {ID: "skills", Top: 900}}, scrollY: 0, viewport: 0, want: "intro"},
		{name: "tie goes to later section", sections: []Section{{ID: "intro", Top: 0}, {ID: "empty", Top: 400}, {ID: "skills", Top: 400}}, scrollY: 100, viewport: 900, want: "skills"},
		{name: "no sections", sections: nil, scrollY: 100, viewport: 900, want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Active(tc.sections, tc.scrollY, tc.viewport); got != tc.want {
				t.Fatalf("Active() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTrackerMountNotifiesOnceThenOnlyOnChange(t *testing.T) {
	t.Parallel()

	var seen []string
	tr := NewTracker(pageSections(), func(id string) { seen = append(seen, id) })

	if tr.Active() != "" {
		t.Fatalf("Active() before mount = %q, want empty", tr.Active())
	}
	if got := tr.Mount(0, 900); got != "intro" {
		t.Fatalf("Mount() = %q, want intro", got)
	}
	tr.Observe(100, 900)
	tr.Observe(500, 900)
	tr.Observe(600, 900)
	tr.Observe(1400, 900)

	want := []string{"intro", "skills", "projects"}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", seen, want)
		}
	}
}

func TestTrackerObserveMountsImplicitly(t *testing.T) {
	t.Parallel()

	tr := NewTracker(pageSections(), nil)
	if got := tr.Observe(500, 900); got != "skills" {
		t.Fatalf("Observe() = %q, want skills", got)
	}
}

func TestTrackerSetOffsetPreservesOrder(t *testing.T) {
	t.Parallel()

	tr := NewTracker(pageSections(), nil)
	tr.SetOffset("skills", 2000)
	tr.SetOffset("showcase", 3000)

	secs := tr.Sections()
	if len(secs) != 4 || secs[1].ID != "skills" || secs[1].Top != 2000 || secs[3].ID != "showcase" {
		t.Fatalf("Sections() = %+v", secs)
	}
	// skills now sits below projects but still precedes it in document order.
	if got := tr.Mount(1500, 900); got != "projects" {
		t.Fatalf("Mount() = %q, want projects", got)
	}
}

func TestNewTrackerCopiesInput(t *testing.T) {
	t.Parallel()

	in := pageSections()
	tr := NewTracker(in, nil)
	in[0].ID = "changed"
	if tr.Sections()[0].ID != "intro" {
		t.Fatalf("tracker observed caller mutation")
	}
}
