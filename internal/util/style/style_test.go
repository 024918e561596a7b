package style

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	for _, tc := range []struct {
		done, total int64
		full        int
	}{
		{0, 10, 0},
		{5, 10, 2},
		{10, 10, 4},
		{0, 0, 4},
	} {
		bar := ProgressBar(4, tc.done, tc.total)
		if got := strings.Count(bar, "█"); got != tc.full {
			t.Fatalf("bad bar for %v/%v: expected = %v full cells, got = %v (%q)", tc.done, tc.total, tc.full, got, bar)
		}
	}
}
