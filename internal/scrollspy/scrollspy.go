// Package scrollspy maps a vertical scroll position to the page section that
// the navigation should highlight.
package scrollspy

// Section is a page section and its top offset measured against the document.
type Section struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// Active returns the last section, in the given order, whose top offset is at
// or above scrollY plus a third of the viewport height. When none qualifies
// the first section is active. Later sections win ties.
func Active(sections []Section, scrollY, viewportHeight float64) string {
	if len(sections) == 0 {
		return ""
	}
	threshold := scrollY + viewportHeight/3
	current := sections[0].ID
	for _, s := range sections {
		if s.Top <= threshold {
			current = s.ID
		}
	}
	return current
}

// Tracker holds the section offsets of one page view and the active section
// derived from them. It is driven from a single event loop and is not safe
// for concurrent use.
type Tracker struct {
	sections []Section
	active   string
	mounted  bool
	onChange func(string)
}

// NewTracker copies sections; their order is document order. onChange may be
// nil.
func NewTracker(sections []Section, onChange func(active string)) *Tracker {
	return &Tracker{
		sections: append([]Section(nil), sections...),
		onChange: onChange,
	}
}

// Mount establishes the initial active section before any scroll event.
func (t *Tracker) Mount(scrollY, viewportHeight float64) string {
	t.mounted = true
	t.set(Active(t.sections, scrollY, viewportHeight), true)
	return t.active
}

// Observe handles one scroll event.
func (t *Tracker) Observe(scrollY, viewportHeight float64) string {
	if !t.mounted {
		return t.Mount(scrollY, viewportHeight)
	}
	t.set(Active(t.sections, scrollY, viewportHeight), false)
	return t.active
}

// SetOffset updates the top offset of a section, appending unknown ids.
func (t *Tracker) SetOffset(id string, top float64) {
	for i := range t.sections {
		if t.sections[i].ID == id {
			t.sections[i].Top = top
			return
		}
	}
	t.sections = append(t.sections, Section{ID: id, Top: top})
}

// Active returns the last computed section, or "" before Mount.
func (t *Tracker) Active() string {
	return t.active
}

// Sections returns a copy of the tracked sections in document order.
func (t *Tracker) Sections() []Section {
	return append([]Section(nil), t.sections...)
}

func (t *Tracker) set(id string, force bool) {
	if id == t.active && !force {
		return
	}
	t.active = id
	if t.onChange != nil {
		t.onChange(id)
	}
}
