package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const Bullet = "•"

// horizontalSpace is every rune unicode.IsSpace accepts except line breaks,
// so strings.TrimSpace never strips anything these patterns left behind.
const horizontalSpace = `[\t\v\f\x{85}\p{Z}]+`

var (
	horizontalSpaceExpr = regexp.MustCompile(horizontalSpace)
	sentenceEndExpr     = regexp.MustCompile(`([.!?])` + horizontalSpace)
	leadingBulletExpr   = regexp.MustCompile(`^[-*]` + horizontalSpace)
	phoneDigitsExpr     = regexp.MustCompile(`\d{6,}`)
)

// CleanText normalizes extracted text into one canonical plain-text form.
// It is idempotent: CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = sentenceEndExpr.ReplaceAllString(s, "$1\n")

	var lines []string
	for _, raw := range strings.Split(s, "\n") {
		lines = append(lines, splitBullets(raw)...)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// splitBullets normalizes one raw line and breaks it before every bullet glyph.
// A blank input yields a single empty line so paragraph breaks survive.
func splitBullets(raw string) []string {
	segments := strings.Split(raw, Bullet)
	lines := make([]string, 0, len(segments))

	head := normalizeLine(segments[0])
	if head != "" {
		head = leadingBulletExpr.ReplaceAllString(head, Bullet+" ")
		if head == Bullet+" " {
			head = ""
		}
	}
	if head != "" || len(segments) == 1 {
		lines = append(lines, head)
	}

	for _, segment := range segments[1:] {
		if item := normalizeLine(segment); item != "" {
			lines = append(lines, Bullet+" "+item)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func normalizeLine(s string) string {
	return strings.TrimSpace(horizontalSpaceExpr.ReplaceAllString(s, " "))
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate returns at most n runes of s and whether anything was cut.
func Truncate(s string, n int) (string, bool) {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:n]), true
}

// HasEmailMarker is the cheap contact probe used in basic metrics, not the strict email pattern.
func HasEmailMarker(s string) bool {
	return strings.Contains(s, "@")
}

func HasPhoneDigits(s string) bool {
	return phoneDigitsExpr.MatchString(s)
}
