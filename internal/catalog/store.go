package catalog

import (
	"slices"
	"strings"
)

// Catalog is the raw record set a source produces.
type Catalog struct {
	Projects   []Project   `json:"projects" yaml:"projects"`
	Skills     []Skill     `json:"skills" yaml:"skills"`
	Techniques []Technique `json:"techniques" yaml:"techniques"`
}

// normalize upgrades reduced records in place: missing ids are assigned after
// the highest id present, in order, and free-text fields are trimmed.
func (c *Catalog) normalize() {
	next := 0
	for _, p := range c.Projects {
		next = max(next, p.ID)
	}
	for i := range c.Projects {
		p := &c.Projects[i]
		if p.ID <= 0 {
			next++
			p.ID = next
		}
		p.Name = strings.TrimSpace(p.Name)
		p.Time = strings.TrimSpace(p.Time)
		if lvl, ok := ParseComplexity(string(p.Complexity)); ok {
			p.Complexity = lvl
		}
	}

	next = 0
	for _, s := range c.Skills {
		next = max(next, s.ID)
	}
	for i := range c.Skills {
		if c.Skills[i].ID <= 0 {
			next++
			c.Skills[i].ID = next
		}
	}

	next = 0
	for _, t := range c.Techniques {
		next = max(next, t.ID)
	}
	for i := range c.Techniques {
		if c.Techniques[i].ID <= 0 {
			next++
			c.Techniques[i].ID = next
		}
	}
}

// Store is the read-only catalog. Every accessor returns copies.
type Store struct {
	projects   []Project
	skills     []Skill
	techniques []Technique

	projectIdx map[int]int
	skillIdx   map[int]int
}

func NewStore(c Catalog) *Store {
	c.Projects = slices.Clone(c.Projects)
	c.Skills = slices.Clone(c.Skills)
	c.Techniques = slices.Clone(c.Techniques)
	c.normalize()
	s := &Store{
		projects:   make([]Project, len(c.Projects)),
		skills:     make([]Skill, len(c.Skills)),
		techniques: make([]Technique, len(c.Techniques)),
		projectIdx: make(map[int]int, len(c.Projects)),
		skillIdx:   make(map[int]int, len(c.Skills)),
	}
	for i, p := range c.Projects {
		s.projects[i] = p.clone()
		if _, dup := s.projectIdx[p.ID]; !dup {
			s.projectIdx[p.ID] = i
		}
	}
	for i, sk := range c.Skills {
		s.skills[i] = sk.clone()
		if _, dup := s.skillIdx[sk.ID]; !dup {
			s.skillIdx[sk.ID] = i
		}
	}
	for i, t := range c.Techniques {
		s.techniques[i] = t.clone()
	}
	return s
}

// Projects returns all projects in catalog order.
func (s *Store) Projects() []Project {
	out := make([]Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.clone()
	}
	return out
}

func (s *Store) Project(id int) (Project, bool) {
	i, ok := s.projectIdx[id]
	if !ok {
		return Project{}, false
	}
	return s.projects[i].clone(), true
}

func (s *Store) Skills() []Skill {
	out := make([]Skill, len(s.skills))
	for i, sk := range s.skills {
		out[i] = sk.clone()
	}
	return out
}

func (s *Store) Skill(id int) (Skill, bool) {
	i, ok := s.skillIdx[id]
	if !ok {
		return Skill{}, false
	}
	return s.skills[i].clone(), true
}

func (s *Store) Techniques() []Technique {
	out := make([]Technique, len(s.techniques))
	for i, t := range s.techniques {
		out[i] = t.clone()
	}
	return out
}

// RelatedProjects resolves a skill's project ids, skipping unknown ones.
func (s *Store) RelatedProjects(sk Skill) []Project {
	var out []Project
	for _, id := range sk.Projects {
		if p, ok := s.Project(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// RelatedSkills resolves a technique's skill ids, skipping unknown ones.
func (s *Store) RelatedSkills(t Technique) []Skill {
	var out []Skill
	for _, id := range t.RelatedSkills {
		if sk, ok := s.Skill(id); ok {
			out = append(out, sk)
		}
	}
	return out
}

// Snapshot returns a copy of the full record set.
func (s *Store) Snapshot() Catalog {
	return Catalog{
		Projects:   s.Projects(),
		Skills:     s.Skills(),
		Techniques: s.Techniques(),
	}
}
