package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	t.Parallel()

	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if len(c.Projects) != 9 {
		t.Fatalf("projects = %d, want 9", len(c.Projects))
	}
	if len(c.Skills) != 6 {
		t.Fatalf("skills = %d, want 6", len(c.Skills))
	}
	if len(c.Techniques) != 5 {
		t.Fatalf("techniques = %d, want 5", len(c.Techniques))
	}
	for i, p := range c.Projects {
		if p.ID != i+1 {
			t.Fatalf("project[%d].ID = %d, want %d", i, p.ID, i+1)
		}
		if !p.Complexity.Known() {
			t.Fatalf("project %q complexity = %q", p.Name, p.Complexity)
		}
		if len(p.Features) == 0 || len(p.Skills) == 0 {
			t.Fatalf("project %q has empty features or skills", p.Name)
		}
	}
	if got := c.Projects[0].Features[0]; got != "Create, read, update, delete tasks" {
		t.Fatalf("first feature = %q", got)
	}
	if c.Projects[0].LastUpdated == nil || c.Projects[0].LastUpdated.Year() != 2025 {
		t.Fatalf("LastUpdated = %v, want 2025 date", c.Projects[0].LastUpdated)
	}
	if !strings.Contains(c.Techniques[0].CodeExample, "from django.db.models import F, Q") {
		t.Fatalf("code example not decoded: %q", c.Techniques[0].CodeExample)
	}
}

func TestDecodeYAMLReducedSchema(t *testing.T) {
	t.Parallel()

	doc := `
projects:
  - name: To-Do List App
    complexity: beginner
    time: " 1-2 days "
    features: "CRUD operations, task categorization"
    skills: Models, Forms, ORM, , Views
    learning: Basics.
  - id: 7
    name: Chat
    complexity: Advanced
    time: 4-6 weeks
    features: [Messaging]
    skills: [Channels]
    learning: Real time.
  - name: Unknown Level
    complexity: Legendary
    time: sometime
    learning: unknown
`
	c, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if len(c.Projects) != 3 {
		t.Fatalf("projects = %d, want 3", len(c.Projects))
	}
	first := c.Projects[0]
	if first.ID != 8 {
		t.Fatalf("assigned id = %d, want 8", first.ID)
	}
	if first.Complexity != Beginner {
		t.Fatalf("complexity = %q, want %q", first.Complexity, Beginner)
	}
	if first.Time != "1-2 days" {
		t.Fatalf("time = %q, want trimmed", first.Time)
	}
	if want := []string{"CRUD operations", "task categorization"}; !equalStrings(first.Features, want) {
		t.Fatalf("features = %v, want %v", first.Features, want)
	}
	if want := []string{"Models", "Forms", "ORM", "Views"}; !equalStrings(first.Skills, want) {
		t.Fatalf("skills = %v, want %v", first.Skills, want)
	}
	if c.Projects[2].ID != 9 {
		t.Fatalf("third id = %d, want 9", c.Projects[2].ID)
	}
	if c.Projects[2].Complexity.Known() {
		t.Fatalf("unknown complexity reported as known")
	}
	if c.Projects[2].Complexity.Rank() != 1 {
		t.Fatalf("unknown rank = %d, want 1", c.Projects[2].Complexity.Rank())
	}
}

func TestDecodeYAMLEmptyDocument(t *testing.T) {
	t.Parallel()

	c, err := DecodeYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if len(c.Projects) != 0 {
		t.Fatalf("projects = %d, want 0", len(c.Projects))
	}
}

func TestProjectDefaults(t *testing.T) {
	t.Parallel()

	var p Project
	if p.Image() != PlaceholderImage {
		t.Fatalf("Image() = %q, want placeholder", p.Image())
	}
	if p.PopularityScore() != 0 {
		t.Fatalf("PopularityScore() = %d, want 0", p.PopularityScore())
	}
	if p.UpdatedAt().Unix() != 0 {
		t.Fatalf("UpdatedAt() = %v, want epoch", p.UpdatedAt())
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	src := Catalog{Projects: []Project{{ID: 1, Name: "A", Tags: StringList{"x"}}}}
	s := NewStore(src)

	src.Projects[0].Name = "changed"
	got := s.Projects()
	if got[0].Name != "A" {
		t.Fatalf("store observed caller mutation: %q", got[0].Name)
	}

	got[0].Tags[0] = "mutated"
	p, ok := s.Project(1)
	if !ok {
		t.Fatalf("Project(1) missing")
	}
	if p.Tags[0] != "x" {
		t.Fatalf("store observed returned-slice mutation: %q", p.Tags[0])
	}
	if _, ok := s.Project(42); ok {
		t.Fatalf("Project(42) ok = true, want false")
	}
}

func TestStoreRelations(t *testing.T) {
	t.Parallel()

	s, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	skills := s.Skills()
	related := s.RelatedProjects(skills[0])
	if len(related) != 3 || related[0].Name != "To-Do List App" {
		t.Fatalf("RelatedProjects() = %v", related)
	}
	techniques := s.Techniques()
	rs := s.RelatedSkills(techniques[0])
	if len(rs) != 2 || rs[1].Title != "Database Management" {
		t.Fatalf("RelatedSkills() = %v", rs)
	}
	if got := s.RelatedProjects(Skill{Projects: []int{99}}); len(got) != 0 {
		t.Fatalf("unknown ids resolved: %v", got)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	want, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	if err := SaveSQLite(ctx, db, want); err != nil {
		t.Fatalf("SaveSQLite() error = %v", err)
	}
	// Saving twice replaces rather than appends.
	if err := SaveSQLite(ctx, db, want); err != nil {
		t.Fatalf("second SaveSQLite() error = %v", err)
	}

	got, err := LoadSQLite(ctx, db)
	if err != nil {
		t.Fatalf("LoadSQLite() error = %v", err)
	}
	if len(got.Projects) != len(want.Projects) {
		t.Fatalf("projects = %d, want %d", len(got.Projects), len(want.Projects))
	}
	for i := range want.Projects {
		w, g := want.Projects[i], got.Projects[i]
		if w.ID != g.ID || w.Name != g.Name || w.Time != g.Time || w.Complexity != g.Complexity {
			t.Fatalf("project[%d] = %+v, want %+v", i, g, w)
		}
		if !equalStrings(w.Features, g.Features) || !equalStrings(w.Tags, g.Tags) {
			t.Fatalf("project[%d] lists = %v/%v, want %v/%v", i, g.Features, g.Tags, w.Features, w.Tags)
		}
		if w.PopularityScore() != g.PopularityScore() || !w.UpdatedAt().Equal(g.UpdatedAt()) {
			t.Fatalf("project[%d] metadata mismatch", i)
		}
	}
	if got.Skills[1].Resources == nil || got.Skills[1].Resources.Cheatsheets == "" {
		t.Fatalf("skill resources not restored: %+v", got.Skills[1].Resources)
	}
	if len(got.Techniques[0].UseCases) != 1 || len(got.Techniques[0].UseCases[0].ImplementationTips) != 3 {
		t.Fatalf("technique use cases not restored: %+v", got.Techniques[0].UseCases)
	}

	store, err := Load(ctx, path)
	if err != nil {
		t.Fatalf("Load(sqlite) error = %v", err)
	}
	if len(store.Projects()) != 9 {
		t.Fatalf("Load(sqlite) projects = %d, want 9", len(store.Projects()))
	}
}

func TestLoadYAMLFileAndUnsupported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(path, []byte("projects:\n  - name: Solo\n    complexity: Advanced\n    time: 1 week\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	if p, ok := s.Project(1); !ok || p.Name != "Solo" {
		t.Fatalf("Project(1) = %+v, %v", p, ok)
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "catalog.toml")); err == nil {
		t.Fatalf("Load(toml) error = nil, want unsupported")
	}
	if _, err := Load(context.Background(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("Load(missing) error = nil")
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	var sb strings.Builder
	if err := EncodeYAML(&sb, c); err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}
	again, err := DecodeYAML(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if len(again.Projects) != len(c.Projects) || again.Projects[8].Name != c.Projects[8].Name {
		t.Fatalf("round trip lost projects")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
