// Package version implements comparison of dotted library versions and
// evaluation of textual version-range selectors against them.
package version

import (
	"strconv"
	"strings"
)

// Strip removes a pre-release suffix ("3.11.0-SNAPSHOT" -> "3.11.0").
// Pre-release versions compare equal to their base release.
func Strip(v string) string {
	if i := strings.IndexByte(v, '-'); i >= 0 {
		return v[:i]
	}
	return v
}

// Compare compares two dotted versions component-wise after stripping
// any pre-release suffix. Returns a negative value if a < b, zero if
// a == b, a positive value if a > b. Missing components count as zero,
// so "3.6" == "3.6.0".
func Compare(a, b string) int {
	as := strings.Split(Strip(a), ".")
	bs := strings.Split(Strip(b), ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = atoi(as[i])
		}
		if i < len(bs) {
			bv = atoi(bs[i])
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Line returns the major.minor prefix of a version ("2.12.18" -> "2.12").
// Versions with fewer than two components are returned unchanged.
func Line(v string) string {
	parts := strings.SplitN(Strip(v), ".", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

