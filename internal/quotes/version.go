package quotes

import (
	"strconv"
	"strings"
)

// CompareVersions compares two dotted version strings numerically,
// segment by segment. Missing segments are treated as 0, so "1.0" and
// "1.0.0" are equal. Returns -1, 0, or 1.
func CompareVersions(a, b string) int {
	as := strings.Split(strings.TrimSpace(a), ".")
	bs := strings.Split(strings.TrimSpace(b), ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av := segmentValue(as, i)
		bv := segmentValue(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func segmentValue(segments []string, i int) int {
	if i >= len(segments) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(segments[i]))
	if err != nil {
		return 0
	}
	return v
}
