// Package chart maps projects onto the complexity/time bubble chart and
// renders it.
package chart

import (
	"strings"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
)

var weeksByBucket = map[string]float64{
	"1-2 days":  0.5,
	"1 week":    1,
	"2 weeks":   2,
	"2-3 weeks": 2.5,
	"3-4 weeks": 3.5,
	"4 weeks":   4,
	"4-6 weeks": 5,
	"6+ weeks":  6.5,
}

// Weeks returns the x coordinate for a time bucket; unknown buckets are 1.
func Weeks(bucket string) float64 {
	if w, ok := weeksByBucket[strings.TrimSpace(bucket)]; ok {
		return w
	}
	return 1
}

// Radius tiers by complexity rank.
const (
	RadiusBeginner     = 8
	RadiusIntermediate = 12
	RadiusAdvanced     = 16
)

// Radius grows with complexity rank.
func Radius(c catalog.Complexity) float64 {
	switch c.Rank() {
	case 3:
		return RadiusAdvanced
	case 2:
		return RadiusIntermediate
	default:
		return RadiusBeginner
	}
}

// Point is one bubble.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Label string  `json:"label"`
	ID    int     `json:"id"`
}

// PointFor places a project on the chart.
func PointFor(p catalog.Project) Point {
	return Point{
		X:     Weeks(p.Time),
		Y:     float64(p.Complexity.Rank()),
		R:     Radius(p.Complexity),
		Label: p.Name,
		ID:    p.ID,
	}
}

// Series groups the points of one complexity level.
type Series struct {
	Level  catalog.Complexity `json:"level"`
	Points []Point            `json:"points"`
}

// Plot returns one series per complexity level, in ascending order, each
// holding the projects of that rank in catalog order. Projects with unknown
// complexity rank 1 and land in the Beginner series.
func Plot(projects []catalog.Project) []Series {
	out := make([]Series, len(catalog.Levels))
	for i, lvl := range catalog.Levels {
		out[i] = Series{Level: lvl, Points: []Point{}}
	}
	for _, p := range projects {
		i := p.Complexity.Rank() - 1
		out[i].Points = append(out[i].Points, PointFor(p))
	}
	return out
}
