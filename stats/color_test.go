package stats

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupColorStable(t *testing.T) {
	assert.Equal(t, GroupColor("Work"), GroupColor("Work"))
	assert.Equal(t, GroupColor("日本語"), GroupColor("日本語"))
}

func TestGroupColorKnownValue(t *testing.T) {
	// Pinned against the 32-bit rolling hash: changing the hash would
	// repaint every existing dashboard.
	assert.Equal(t, "hsl(90, 65%, 55%)", GroupColor("Work"))
}

func TestGroupColorFormat(t *testing.T) {
	re := regexp.MustCompile(`^hsl\(\d+, \d+%, \d+%\)$`)
	for _, name := range []string{"a", "Deep Work", "reading", "练习"} {
		assert.Regexp(t, re, GroupColor(name))
	}
}

func TestGroupColorRanges(t *testing.T) {
	re := regexp.MustCompile(`^hsl\((\d+), (\d+)%, (\d+)%\)$`)
	for _, name := range []string{"alpha", "beta", "gamma", "delta", "x"} {
		m := re.FindStringSubmatch(GroupColor(name))
		assert.NotNil(t, m)
	}
}

func TestHash32Overflow(t *testing.T) {
	// Long strings overflow int32; the wraparound must stay signed 32-bit.
	long := ""
	for i := 0; i < 64; i++ {
		long += "abcdefgh"
	}
	assert.Equal(t, hash32(long), hash32(long))
	assert.NotEqual(t, hash32("abc"), hash32("abd"))
}
