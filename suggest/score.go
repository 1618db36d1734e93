package suggest

import (
	"strings"
	"unicode/utf8"
)

const (
	prefixBase   = 100.0
	afterDotBase = 80.0
	bonusScale   = 20.0

	fuzzyBoundary = 10.0
	fuzzyInner    = 5.0

	frecencyWeight = 50.0
)

// Score rates how well input matches a completion string. It returns 0
// when the completion should be excluded.
//
//   - prefix match: 100 plus a bonus proportional to how much of the
//     completion the input covers
//   - prefix of the part after the first '.': 80 plus the same bonus
//   - otherwise an in-order fuzzy walk: 10 points per character matched at
//     the start or right after a '.' or ' ', 5 points elsewhere
func Score(input, completion string) float64 {
	in := strings.ToLower(input)
	comp := strings.ToLower(completion)
	if in == "" {
		return 0
	}

	if strings.HasPrefix(comp, in) {
		return prefixBase + bonus(in, comp)
	}
	if _, after, ok := strings.Cut(comp, "."); ok && strings.HasPrefix(after, in) {
		return afterDotBase + bonus(in, comp)
	}
	return fuzzyScore(in, comp)
}

func bonus(in, comp string) float64 {
	n := utf8.RuneCountInString(comp)
	if n == 0 {
		return 0
	}
	return bonusScale * float64(utf8.RuneCountInString(in)) / float64(n)
}

func fuzzyScore(in, comp string) float64 {
	want := []rune(in)
	pos := 0
	score := 0.0
	var prev rune

	for i, r := range []rune(comp) {
		if pos < len(want) && r == want[pos] {
			if i == 0 || prev == '.' || prev == ' ' {
				score += fuzzyBoundary
			} else {
				score += fuzzyInner
			}
			pos++
		}
		prev = r
	}

	if pos < len(want) {
		return 0
	}
	return score
}

// InOrder reports whether every character of input appears in s in order,
// case-insensitively.
func InOrder(input, s string) bool {
	want := []rune(strings.ToLower(input))
	pos := 0
	for _, r := range strings.ToLower(s) {
		if pos < len(want) && r == want[pos] {
			pos++
		}
	}
	return pos == len(want)
}
