// Package theme persists the light/dark preference in a browser cookie.
package theme

import (
	"net/http"
	"strconv"
)

type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

func (m Mode) IsDark() bool { return m == Dark }

// Toggled returns the opposite mode.
func (m Mode) Toggled() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Parse accepts "dark", "light" and the boolean spellings stored in the
// cookie. Anything else is Light.
func Parse(s string) Mode {
	switch s {
	case "dark":
		return Dark
	case "light":
		return Light
	}
	if dark, err := strconv.ParseBool(s); err == nil && dark {
		return Dark
	}
	return Light
}

const CookieName = "darkMode"

// Store reads and writes the preference cookie.
type Store struct {
	Name   string
	MaxAge int
	Secure bool
}

// NewStore returns a store with a one-year cookie lifetime.
func NewStore(secure bool) *Store {
	return &Store{Name: CookieName, MaxAge: 365 * 24 * 60 * 60, Secure: secure}
}

func (s *Store) name() string {
	if s.Name == "" {
		return CookieName
	}
	return s.Name
}

// Load returns the stored preference; absent or unreadable cookies are Light.
func (s *Store) Load(r *http.Request) Mode {
	c, err := r.Cookie(s.name())
	if err != nil {
		return Light
	}
	dark, err := strconv.ParseBool(c.Value)
	if err != nil || !dark {
		return Light
	}
	return Dark
}

// Save persists m.
func (s *Store) Save(w http.ResponseWriter, m Mode) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name(),
		Value:    strconv.FormatBool(m.IsDark()),
		Path:     "/",
		MaxAge:   s.MaxAge,
		Secure:   s.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// Toggle flips the stored preference, persists it and returns the new mode.
func (s *Store) Toggle(w http.ResponseWriter, r *http.Request) Mode {
	next := s.Load(r).Toggled()
	s.Save(w, next)
	return next
}
