package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/connosssss/trackr/models"
)

// PieSentinelGroup labels sessions without a group tag in the breakdown pie.
const PieSentinelGroup = "No Group"

// Geometry shared with the client's 300x300 SVG viewport.
const (
	pieCenterX = 150.0
	pieCenterY = 150.0
	pieRadius  = 130.0
)

// Slice is one sector of the group-breakdown pie. Value is in seconds.
// Angles are degrees measured clockwise from 12 o'clock; Path is the SVG
// sector path for the fixed viewport above.
type Slice struct {
	Name       string  `json:"name"`
	Value      int64   `json:"value"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
	LargeArc   bool    `json:"largeArc"`
	Path       string  `json:"path"`
}

// BuildPie reduces the full session list (no period filter) into per-group
// totals and sector geometry. Groups are ordered by descending total, ties
// broken by name for determinism. An empty or all-zero input yields nil.
func BuildPie(sessions []models.TimeSession) []Slice {
	totals := make(map[string]int64)
	for i := range sessions {
		s := &sessions[i]
		if !s.HasDuration() {
			continue
		}
		name := PieSentinelGroup
		if s.Group != nil && *s.Group != "" {
			name = *s.Group
		}
		totals[name] += *s.Duration
	}

	var total int64
	names := make([]string, 0, len(totals))
	for name, v := range totals {
		names = append(names, name)
		total += v
	}
	if total == 0 {
		return nil
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	slices := make([]Slice, 0, len(names))
	cumulative := 0.0
	for _, name := range names {
		value := totals[name]
		fraction := float64(value) / float64(total)
		angle := fraction * 360
		sl := Slice{
			Name:       name,
			Value:      value,
			Color:      GroupColor(name),
			Percentage: math.Round(fraction*1000) / 10,
			StartAngle: cumulative,
			EndAngle:   cumulative + angle,
			LargeArc:   angle > 180,
		}
		sl.Path = sectorPath(sl.StartAngle, sl.EndAngle, sl.LargeArc)
		cumulative += angle
		slices = append(slices, sl)
	}
	return slices
}

// sectorPath emits "M cx cy L x1 y1 A r r 0 la 1 x2 y2 Z" with angle 0 at
// 12 o'clock (the renderer's -90 degree offset is baked in here).
func sectorPath(startDeg, endDeg float64, largeArc bool) string {
	rad := func(deg float64) float64 { return (deg - 90) * math.Pi / 180 }
	x1 := pieCenterX + pieRadius*math.Cos(rad(startDeg))
	y1 := pieCenterY + pieRadius*math.Sin(rad(startDeg))
	x2 := pieCenterX + pieRadius*math.Cos(rad(endDeg))
	y2 := pieCenterY + pieRadius*math.Sin(rad(endDeg))
	la := 0
	if largeArc {
		la = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		pieCenterX, pieCenterY, x1, y1, pieRadius, pieRadius, la, x2, y2)
}
