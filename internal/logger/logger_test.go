package logger

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"dev", "prod", " Production ", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error = %v", mode, err)
		}
		l.With("component", "test").Debug("built", "mode", mode)
	}
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()

	l := NewNop().With("k", "v")
	l.Info("dropped", "n", 1)
	l.Sync()
}
