package news

import "strings"

const baseHashtags = "#Football #Soccer #FootyNews"

// HashtagsForSource returns the hashtag line appended to every Facebook
// message, with source-specific tags on top of the base set.
func HashtagsForSource(source string) string {
	switch {
	case strings.Contains(source, "Premier League"):
		return baseHashtags + " #PremierLeague #EPL"
	case strings.Contains(source, "ESPN"):
		return baseHashtags + " #ESPNFC"
	case strings.Contains(source, "Sky Sports"):
		return baseHashtags + " #SkySports #Football"
	case strings.Contains(source, "BBC"):
		return baseHashtags + " #BBCSport"
	case strings.Contains(source, "Goal"):
		return baseHashtags + " #GoalCom #FootballNews"
	case strings.Contains(source, "FIFA"):
		return baseHashtags + " #FIFA #WorldCup #International"
	default:
		return baseHashtags
	}
}

// FallbackSummary fills in for articles scraped without one so the composed
// message never ends up as a bare headline.
func FallbackSummary(source string) string {
	if source == "" {
		return "Latest football news"
	}
	return "Latest football news from " + source
}

// ComposeMessage builds the final post text: title, summary and hashtags
// separated by blank lines, trimmed.
func ComposeMessage(title, summary, hashtags string) string {
	return strings.TrimSpace(title + "\n\n" + summary + "\n\n" + hashtags)
}
