package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/richard-senior/valueodds/pkg/config"
)

/**
* The source site carries no schema contract, so everything structural is
* heuristic. Each heuristic lives here as a small pure function over an
* explicit pattern table: when the site drifts, only one table needs editing.
 */

// roundPatterns maps round-hint text patterns to round labels.
// Order matters: semifinal and quarterfinal must be tested before the
// bare final pattern.
var roundPatterns = []struct {
	re    *regexp.Regexp
	round Round
}{
	{regexp.MustCompile(`(?i)semi[-\s]?final|\bsf\b`), RoundSF},
	{regexp.MustCompile(`(?i)quarter[-\s]?final|\bqf\b`), RoundQF},
	{regexp.MustCompile(`(?i)\bfinal\b`), RoundFinal},
	{regexp.MustCompile(`(?i)\br16\b|round of 16`), RoundR16},
	{regexp.MustCompile(`(?i)\br32\b|round of 32`), RoundR32},
	{regexp.MustCompile(`(?i)\br64\b|round of 64`), RoundR64},
	{regexp.MustCompile(`(?i)\b1st\b|first round|\br1\b`), RoundR1},
	{regexp.MustCompile(`(?i)\b2nd\b|second round|\br2\b`), RoundR2},
	{regexp.MustCompile(`(?i)qual`), RoundQual},
}

// RoundFromText classifies free-form round text into a round label,
// returning RoundNone when nothing matches
func RoundFromText(text string) Round {
	for _, p := range roundPatterns {
		if p.re.MatchString(text) {
			return p.round
		}
	}
	return RoundNone
}

// surfaceWords maps surface words found on tournament pages to the
// normalized surface enum. Carpet courts are conventionally indoor.
var surfaceWords = []struct {
	word    string
	surface Surface
}{
	{"indoor", SurfaceIndoors},
	{"hard", SurfaceHard},
	{"grass", SurfaceGrass},
	{"clay", SurfaceClay},
	{"carpet", SurfaceIndoors},
}

// NormalizeSurface maps scraped surface text to the surface enum,
// returning SurfaceUnknown for anything unrecognized
func NormalizeSurface(text string) Surface {
	t := strings.ToLower(text)
	for _, w := range surfaceWords {
		if strings.Contains(t, w.word) {
			return w.surface
		}
	}
	return SurfaceUnknown
}

// ParseWinLoss parses a "W/L" formatted cell such as "12/5".
// Absent, placeholder ("-") or malformed input yields {0, 0, nil};
// this never errors.
func ParseWinLoss(text string) WinLoss {
	if text == "" || text == "-" || !strings.Contains(text, "/") {
		return WinLoss{}
	}
	parts := strings.SplitN(text, "/", 2)
	w, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	l, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	if w < 0 {
		w = 0
	}
	if l < 0 {
		l = 0
	}
	out := WinLoss{W: w, L: l}
	if w+l > 0 {
		pct := float64(w) / float64(w+l)
		out.Pct = &pct
	}
	return out
}

// ParseOdd parses one decimal odds cell, normalizing a decimal comma.
// A value is accepted only if finite and strictly greater than the
// configured minimum; real decimal odds are always >= 1.0, so values at
// or near 1.0 are noise rather than genuine quotes.
func ParseOdd(text string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil
	}
	if n <= config.Cfg.MinDecimalOdds {
		return nil
	}
	return &n
}

// cleanRank parses a scraped rank string into a positive integer,
// returning nil for non-numeric or absent input
func cleanRank(text string) *int {
	digits := regexp.MustCompile(`\D`).ReplaceAllString(text, "")
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// collapseWhitespace flattens runs of whitespace to single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
