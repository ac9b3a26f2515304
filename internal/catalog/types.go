package catalog

import (
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Complexity is the ordinal difficulty of a project.
type Complexity string

const (
	Beginner     Complexity = "Beginner"
	Intermediate Complexity = "Intermediate"
	Advanced     Complexity = "Advanced"
)

// Levels lists the complexity levels in ascending order.
var Levels = []Complexity{Beginner, Intermediate, Advanced}

// Rank is Beginner=1, Intermediate=2, Advanced=3. Unknown values rank 1.
func (c Complexity) Rank() int {
	switch c {
	case Intermediate:
		return 2
	case Advanced:
		return 3
	default:
		return 1
	}
}

// Known reports whether c is one of the three levels.
func (c Complexity) Known() bool {
	return slices.Contains(Levels, c)
}

// ParseComplexity matches a level name case-insensitively.
func ParseComplexity(s string) (Complexity, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Levels {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// PlaceholderImage is shown for projects without an image.
const PlaceholderImage = "/static/img/placeholder.svg"

type Project struct {
	ID            int        `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Complexity    Complexity `json:"complexity" yaml:"complexity"`
	Time          string     `json:"time" yaml:"time"`
	Features      StringList `json:"features" yaml:"features"`
	Skills        StringList `json:"skills" yaml:"skills"`
	Learning      string     `json:"learning" yaml:"learning"`
	ImageURL      string     `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	GithubURL     string     `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveDemoURL   string     `json:"liveDemoUrl,omitempty" yaml:"liveDemoUrl,omitempty"`
	Tags          StringList `json:"tags,omitempty" yaml:"tags,omitempty"`
	Prerequisites StringList `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Popularity    *int       `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Image returns the project image or the placeholder.
func (p Project) Image() string {
	if p.ImageURL == "" {
		return PlaceholderImage
	}
	return p.ImageURL
}

// PopularityScore returns the popularity, 0 when missing.
func (p Project) PopularityScore() int {
	if p.Popularity == nil {
		return 0
	}
	return *p.Popularity
}

// UpdatedAt returns the last update, the Unix epoch when missing.
func (p Project) UpdatedAt() time.Time {
	if p.LastUpdated == nil {
		return time.Unix(0, 0).UTC()
	}
	return *p.LastUpdated
}

func (p Project) clone() Project {
	out := p
	out.Features = slices.Clone(p.Features)
	out.Skills = slices.Clone(p.Skills)
	out.Tags = slices.Clone(p.Tags)
	out.Prerequisites = slices.Clone(p.Prerequisites)
	if p.Popularity != nil {
		v := *p.Popularity
		out.Popularity = &v
	}
	if p.LastUpdated != nil {
		v := *p.LastUpdated
		out.LastUpdated = &v
	}
	return out
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

type SkillResources struct {
	Documentation string     `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Tutorials     StringList `json:"tutorials,omitempty" yaml:"tutorials,omitempty"`
	Cheatsheets   string     `json:"cheatsheets,omitempty" yaml:"cheatsheets,omitempty"`
}

type Skill struct {
	ID        int             `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Content   string          `json:"content" yaml:"content"`
	Level     SkillLevel      `json:"level" yaml:"level"`
	Icon      string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category  string          `json:"category" yaml:"category"`
	Projects  []int           `json:"projects,omitempty" yaml:"projects,omitempty"`
	Resources *SkillResources `json:"resources,omitempty" yaml:"resources,omitempty"`
}

func (s Skill) clone() Skill {
	out := s
	out.Projects = slices.Clone(s.Projects)
	if s.Resources != nil {
		r := *s.Resources
		r.Tutorials = slices.Clone(s.Resources.Tutorials)
		out.Resources = &r
	}
	return out
}

type TechniqueDifficulty string

const (
	DifficultyBasic        TechniqueDifficulty = "Basic"
	DifficultyIntermediate TechniqueDifficulty = "Intermediate"
	DifficultyAdvanced     TechniqueDifficulty = "Advanced"
	DifficultyExpert       TechniqueDifficulty = "Expert"
)

type UseCase struct {
	Title              string     `json:"title" yaml:"title"`
	Description        string     `json:"description" yaml:"description"`
	ImplementationTips StringList `json:"implementationTips,omitempty" yaml:"implementationTips,omitempty"`
}

type TechniqueResources struct {
	Documentation string     `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Tutorials     StringList `json:"tutorials,omitempty" yaml:"tutorials,omitempty"`
	Packages      StringList `json:"packages,omitempty" yaml:"packages,omitempty"`
}

type Technique struct {
	ID            int                 `json:"id" yaml:"id"`
	Title         string              `json:"title" yaml:"title"`
	Content       string              `json:"content" yaml:"content"`
	Relevance     StringList          `json:"relevance" yaml:"relevance"`
	Difficulty    TechniqueDifficulty `json:"difficulty" yaml:"difficulty"`
	Category      string              `json:"category" yaml:"category"`
	Icon          string              `json:"icon,omitempty" yaml:"icon,omitempty"`
	CodeExample   string              `json:"codeExample,omitempty" yaml:"codeExample,omitempty"`
	UseCases      []UseCase           `json:"useCases,omitempty" yaml:"useCases,omitempty"`
	RelatedSkills []int               `json:"relatedSkills,omitempty" yaml:"relatedSkills,omitempty"`
	Resources     *TechniqueResources `json:"resources,omitempty" yaml:"resources,omitempty"`
}

func (t Technique) clone() Technique {
	out := t
	out.Relevance = slices.Clone(t.Relevance)
	out.RelatedSkills = slices.Clone(t.RelatedSkills)
	if t.UseCases != nil {
		out.UseCases = make([]UseCase, len(t.UseCases))
		for i, uc := range t.UseCases {
			uc.ImplementationTips = slices.Clone(uc.ImplementationTips)
			out.UseCases[i] = uc
		}
	}
	if t.Resources != nil {
		r := *t.Resources
		r.Tutorials = slices.Clone(t.Resources.Tutorials)
		r.Packages = slices.Clone(t.Resources.Packages)
		out.Resources = &r
	}
	return out
}

// StringList decodes either a YAML sequence or the reduced form of a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = SplitList(node.Value)
		return nil
	default:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
}

// SplitList splits a comma-separated string, trimming and dropping empties.
func SplitList(s string) StringList {
	var out StringList
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
