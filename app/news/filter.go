package news

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Football (soccer) keywords. Matching is a flat substring search over the
// folded concatenation of title, summary and URL; short keywords matching
// inside longer words is an accepted limitation, not a bug.
var footballKeywords = []string{
	"premier league", "premierleague", "epl", "english premier league",
	"la liga", "laliga", "serie a", "seriea", "bundesliga",
	"champions league", "europa league", "europa conference", "uefa",
	"world cup", "euro", "euros", "euro2024", "euro 2024",
	"transfer", "signing", "transfer news", "transfer window",
	"goal", "goals", "match", "fixture", "lineup", "starting xi",
	"injury", "injury update", "team news", "tactics", "formation",
	"manager", "coach", "preseason", "pre-season", "friendly",
	"hat-trick", "clean sheet", "assist", "penalty", "free kick",
	"man city", "manchester city", "man utd", "manchester united",
	"liverpool", "chelsea", "arsenal", "tottenham", "spurs",
	"real madrid", "barcelona", "atletico", "barca",
	"bayern", "dortmund", "psg", "juventus", "milan", "inter",
	"fifa", "fifa world cup",
	"world cup qualifier", "international", "national team",
}

// American-football exclusion terms. A hit here rejects the article before
// the football list is even consulted.
var americanFootballKeywords = []string{
	"nfl", "super bowl", "touchdown", "quarterback", "running back",
	"wide receiver", "offensive line", "defensive line", "linebacker",
	"cornerback", "safety", "field goal", "extra point", "punt",
	"kickoff", "onside kick", "hail mary", "playoff", "pro bowl",
	"american football", "gridiron", "first down", "end zone",
	"ncaa football", "college football", "cfb", "xfl", "usfl", "question",
	"quiz", "?",
}

var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// foldText lower-cases and strips diacritics so "Atlético" matches the
// "atletico" keyword.
func foldText(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// LooksLikeFootball reports whether the article text is about association
// football. The American-football exclusion list takes priority: any hit
// there rejects immediately, regardless of soccer keywords. Empty input is
// never accepted.
func LooksLikeFootball(title, summary, url string) bool {
	text := foldText(title + " " + summary + " " + url)

	for _, kw := range americanFootballKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}

	for _, kw := range footballKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
