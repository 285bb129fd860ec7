package tests

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", formatClock(0))
	assert.Equal(t, "00:01:30", formatClock(90))
	assert.Equal(t, "01:00:00", formatClock(3600))
	assert.Equal(t, "27:46:40", formatClock(100000))
	assert.Equal(t, "00:00:00", formatClock(-5))
}

func TestParseClock(t *testing.T) {
	for _, in := range []string{"00:00:00", "00:01:30", "01:00:00", "27:46:40"} {
		seconds, err := parseClock(in)
		assert.NoError(t, err)
		assert.Equal(t, in, formatClock(seconds))
	}

	_, err := parseClock("1h30m")
	assert.Error(t, err)
	_, err = parseClock("01:30")
	assert.Error(t, err)
	_, err = parseClock("-1:00:00")
	assert.Error(t, err)
}

// These are copied from handlers/sheets.go for testing purposes.
func formatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func parseClock(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
