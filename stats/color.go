package stats

import "fmt"

// NeutralColor renders the sentinel group and the collapsed "Total" segment.
const NeutralColor = "#65656E"

// GroupColor maps a group name to a stable HSL color. The hash uses 32-bit
// signed wraparound so the same name always produces the same color
// regardless of platform.
func GroupColor(name string) string {
	h := int64(hash32(name))
	if h < 0 {
		h = -h
	}
	hue := h % 360
	saturation := 65 + h%35
	lightness := 45 + h%20
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}

// hash32 is the rolling hash hash = c + hash*31 with int32 overflow.
func hash32(s string) int32 {
	var h int32 = 1
	for _, r := range s {
		h = int32(r) + ((h << 5) - h)
	}
	return h
}
