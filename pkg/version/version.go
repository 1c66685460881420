// Package version orders artifact version strings.
//
// Versions are split into numeric and alphabetic segments. Zero numbers and
// release qualifiers (ga, final, release) are neutral: they compare equal to
// each other and to the padding of a shorter version, and trailing neutral
// segments are dropped, so "1", "1.0" and "1.0.RELEASE" share one position
// in the order. Segments then rank as
//
//	alpha < beta < milestone < rc < snapshot < neutral < sp < other qualifiers < numbers
//
// with numbers compared numerically and unknown qualifiers lexically.
// Versions whose segments compare equal are ordered by their raw strings,
// which makes the ordering total.
//
//	vs := version.ParseAll([]string{"1.10.0", "1.2.0", "1.2.0-RC1"})
//	// [1.2.0-RC1 1.2.0 1.10.0]
package version

import (
	"slices"
	"strings"
	"unicode"
)

// Version is a parsed version string. The zero value is the empty version,
// which ranks like "0" and sorts just before it.
type Version struct {
	raw  string
	segs []segment
}

type segment struct {
	rank  int
	value string // digits without leading zeros, or lowercased letters
}

// Segment ranks in ascending order. rankRelease is the neutral rank shared
// by zero numbers, release qualifiers and padding.
const (
	rankAlpha = iota + 1
	rankBeta
	rankMilestone
	rankRC
	rankSnapshot
	rankRelease
	rankSP
	rankUnknown
	rankNumber
)

var neutral = segment{rank: rankRelease}

var qualifierRanks = map[string]int{
	"alpha":     rankAlpha,
	"a":         rankAlpha,
	"beta":      rankBeta,
	"b":         rankBeta,
	"milestone": rankMilestone,
	"m":         rankMilestone,
	"rc":        rankRC,
	"cr":        rankRC,
	"snapshot":  rankSnapshot,
	"":          rankRelease,
	"ga":        rankRelease,
	"final":     rankRelease,
	"release":   rankRelease,
	"sp":        rankSP,
}

// Parse parses s. Parsing never fails; any string is a version.
func Parse(s string) Version {
	return Version{raw: s, segs: split(s)}
}

// ParseAll parses every string and returns the versions sorted ascending.
func ParseAll(ss []string) []Version {
	vs := make([]Version, len(ss))
	for i, s := range ss {
		vs[i] = Parse(s)
	}
	Sort(vs)
	return vs
}

// String returns the original version string.
func (v Version) String() string { return v.raw }

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(b []byte) error {
	*v = Parse(string(b))
	return nil
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return Compare(v, o) < 0 }

// Sort sorts vs in ascending order.
func Sort(vs []Version) {
	slices.SortFunc(vs, Compare)
}

// Strings returns the raw strings of vs in order.
func Strings(vs []Version) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.raw
	}
	return out
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b. It returns 0 only when the raw strings are identical.
func Compare(a, b Version) int {
	n := max(len(a.segs), len(b.segs))
	for i := range n {
		if c := compareSegments(segAt(a.segs, i), segAt(b.segs, i)); c != 0 {
			return c
		}
	}
	return strings.Compare(a.raw, b.raw)
}

// segAt returns segs[i], or the neutral segment past the end.
func segAt(segs []segment, i int) segment {
	if i < len(segs) {
		return segs[i]
	}
	return neutral
}

func compareSegments(a, b segment) int {
	if a.rank != b.rank {
		if a.rank < b.rank {
			return -1
		}
		return 1
	}
	switch a.rank {
	case rankNumber:
		return compareNumeric(a.value, b.value)
	case rankUnknown:
		return strings.Compare(a.value, b.value)
	}
	return 0
}

// compareNumeric compares digit strings without leading zeros, so numbers
// of any length compare correctly.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func rank(q string) int {
	if r, ok := qualifierRanks[q]; ok {
		return r
	}
	return rankUnknown
}

func isSeparator(r rune) bool {
	return r == '.' || r == '-' || r == '_' || r == '+'
}

func split(s string) []segment {
	var segs []segment
	var cur strings.Builder
	curDigit := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		v := cur.String()
		cur.Reset()
		if curDigit {
			v = strings.TrimLeft(v, "0")
			if v == "" {
				segs = append(segs, neutral)
			} else {
				segs = append(segs, segment{rank: rankNumber, value: v})
			}
			return
		}
		v = strings.ToLower(v)
		r := rank(v)
		if r != rankUnknown {
			v = "" // known qualifiers compare by rank alone
		}
		segs = append(segs, segment{rank: r, value: v})
	}

	for _, r := range s {
		if isSeparator(r) {
			flush()
			continue
		}
		digit := unicode.IsDigit(r)
		if cur.Len() > 0 && digit != curDigit {
			flush()
		}
		curDigit = digit
		cur.WriteRune(r)
	}
	flush()
	for len(segs) > 0 && segs[len(segs)-1] == neutral {
		segs = segs[:len(segs)-1]
	}
	return segs
}
