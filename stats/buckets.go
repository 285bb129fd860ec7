package stats

import (
	"sort"

	"github.com/connosssss/trackr/models"
)

// BucketSentinelGroup labels sessions without a group tag in bucketed charts.
const BucketSentinelGroup = "Uncategorized"

// Segment is one colored slice of a stacked bar, in hours.
type Segment struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Bucket is a single period-unit column of an aggregated chart.
type Bucket struct {
	Label    string    `json:"label"`
	Total    float64   `json:"total"`
	Segments []Segment `json:"segments"`
}

// BuildBuckets assigns each session with a positive duration to the bucket
// matching its start time, accumulating hours per group. Sessions outside
// the range, or whose key is not among the labels, are dropped from this
// view. With showGroups disabled every bucket collapses to a single neutral
// "Total" segment; otherwise segments are sorted alphabetically by group.
func BuildBuckets(sessions []models.TimeSession, r Range, showGroups bool) []Bucket {
	acc := make(map[string]map[string]float64, len(r.Labels))
	for _, label := range r.Labels {
		acc[label] = make(map[string]float64)
	}

	for i := range sessions {
		s := &sessions[i]
		if !s.HasDuration() {
			continue
		}
		key, ok := r.labelFor(s.StartTime)
		if !ok {
			continue
		}
		groups, ok := acc[key]
		if !ok {
			continue
		}
		name := BucketSentinelGroup
		if s.Group != nil && *s.Group != "" {
			name = *s.Group
		}
		groups[name] += float64(*s.Duration) / 3600
	}

	buckets := make([]Bucket, 0, len(r.Labels))
	for _, label := range r.Labels {
		var total float64
		segments := make([]Segment, 0, len(acc[label]))
		for name, hours := range acc[label] {
			total += hours
			color := NeutralColor
			if name != BucketSentinelGroup {
				color = GroupColor(name)
			}
			segments = append(segments, Segment{Label: name, Value: hours, Color: color})
		}

		if showGroups {
			sort.Slice(segments, func(i, j int) bool {
				return segments[i].Label < segments[j].Label
			})
		} else {
			segments = []Segment{{Label: "Total", Value: total, Color: NeutralColor}}
		}

		buckets = append(buckets, Bucket{Label: label, Total: total, Segments: segments})
	}
	return buckets
}
