// Package modal is the two-state presenter behind the project detail dialog.
package modal

import "github.com/Zachkp/portfolio-guide/internal/catalog"

// ScrollLock controls background scrolling while the dialog is open.
type ScrollLock interface {
	// Suppress disables background scrolling and returns the policy it replaced.
	Suppress() (prior string)
	// Restore reinstates a policy returned by Suppress.
	Restore(prior string)
}

// Trigger is a user action that dismisses the dialog.
type Trigger int

const (
	CloseButton Trigger = iota
	Backdrop
	EscapeKey
)

func (t Trigger) String() string {
	switch t {
	case CloseButton:
		return "close-button"
	case Backdrop:
		return "backdrop"
	case EscapeKey:
		return "escape"
	default:
		return "unknown"
	}
}

// Presenter is either Closed or Open with exactly one project.
type Presenter struct {
	lock    ScrollLock
	project catalog.Project
	open    bool
	prior   string
}

// New returns a closed presenter. lock may be nil.
func New(lock ScrollLock) *Presenter {
	return &Presenter{lock: lock}
}

// Open shows p. Opening while open replaces the project without passing
// through Closed, so scrolling stays suppressed.
func (m *Presenter) Open(p catalog.Project) {
	if !m.open && m.lock != nil {
		m.prior = m.lock.Suppress()
	}
	m.project = p
	m.open = true
}

// Close hides the dialog and restores scrolling. Closing a closed presenter
// does nothing.
func (m *Presenter) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.project = catalog.Project{}
	if m.lock != nil {
		m.lock.Restore(m.prior)
	}
	m.prior = ""
}

// Dismiss routes every dismissal trigger to Close.
func (m *Presenter) Dismiss(Trigger) {
	m.Close()
}

// HandleKey closes on Escape and ignores every other key.
func (m *Presenter) HandleKey(key string) {
	if key == "Escape" || key == "Esc" {
		m.Dismiss(EscapeKey)
	}
}

// HandleClick closes on clicks outside the dialog content.
func (m *Presenter) HandleClick(insideContent bool) {
	if !insideContent {
		m.Dismiss(Backdrop)
	}
}

func (m *Presenter) IsOpen() bool {
	return m.open
}

// Current returns the displayed project.
func (m *Presenter) Current() (catalog.Project, bool) {
	return m.project, m.open
}

// Overflow is a ScrollLock over a CSS overflow value, as applied to the page
// body when rendering.
type Overflow struct {
	Value string
}

func (o *Overflow) Suppress() string {
	prior := o.Value
	o.Value = "hidden"
	return prior
}

func (o *Overflow) Restore(prior string) {
	o.Value = prior
}

// Locked reports whether scrolling is currently suppressed.
func (o *Overflow) Locked() bool {
	return o.Value == "hidden"
}
