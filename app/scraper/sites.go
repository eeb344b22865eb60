package scraper

import (
	"net/http"
)

// NewPremierLeagueScraper scrapes the official Premier League news pages
func NewPremierLeagueScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "Premier League",
		urls: []string{
			"https://www.premierleague.com/news",
			"https://www.premierleague.com/news?page=1",
			"https://www.premierleague.com/news?page=2",
		},
		rules: siteRules{
			articleSelectors: []string{
				`a[href*="/news/"]`,
				".newsArticle",
				".article",
				".news-item",
				".news-list__item",
				`[data-component="news-article"]`,
				".news-card",
				".card--news",
			},
			titleSelector:   "h1, h2, h3, h4, .title, .headline, .newsArticle__title",
			summarySelector: "p, .summary, .excerpt, .description, .newsArticle__summary",
			fallbackToText:  true,
			baseURL:         "https://www.premierleague.com",
			maxItems:        20,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// NewFIFAScraper scrapes FIFA's article and tournament pages
func NewFIFAScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "FIFA",
		urls: []string{
			"https://www.fifa.com/fifaplus/en/articles",
			"https://www.fifa.com/fifaplus/en/news",
			"https://www.fifa.com/fifaplus/en/tournaments/mens/worldcup",
		},
		rules: siteRules{
			articleSelectors: []string{
				`a[href*="/articles/"]`,
				`a[href*="/news/"]`,
				".article-card",
				".news-item",
				".content-item",
				`[data-testid*="article"]`,
				".fifa-article",
			},
			titleSelector:   "h1, h2, h3, h4, .title, .headline, .article-title",
			summarySelector: "p, .summary, .excerpt, .description",
			fallbackToText:  true,
			fallbackMaxLen:  100,
			baseURL:         "https://www.fifa.com",
			maxItems:        15,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// NewESPNFCScraper scrapes the ESPN soccer front page
func NewESPNFCScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "ESPN FC",
		urls: []string{"https://www.espn.com/soccer/"},
		rules: siteRules{
			articleSelectors: []string{
				`.contentItem, .headlineStack__list-item, article, a[href*="/soccer/"]`,
			},
			summarySelector: "p",
			titleFromLink:   true,
			baseURL:         "https://www.espn.com",
			perPageLimit:    25,
			maxItems:        15,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// NewSkySportsScraper scrapes the Sky Sports football news listing
func NewSkySportsScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "Sky Sports",
		urls: []string{"https://www.skysports.com/football/news"},
		rules: siteRules{
			articleSelectors: []string{
				`.news-list__item, .article, .news-story, .site-layout__secondary-column a`,
			},
			titleSelector:   "h4, h3, h2",
			summarySelector: "p",
			fallbackToText:  true,
			baseURL:         "https://www.skysports.com",
			perPageLimit:    20,
			maxItems:        15,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// NewBBCSportScraper scrapes the BBC Sport football section
func NewBBCSportScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "BBC Sport",
		urls: []string{"https://www.bbc.com/sport/football"},
		rules: siteRules{
			articleSelectors: []string{
				`[data-testid*="card"], .gs-c-promo, .sp-c-promo, .ssrcss-1s51t2k, a[href*="/sport/football/"]`,
			},
			titleSelector:   `h2, h3, h4, [data-testid*="card-headline"]`,
			summarySelector: `p, [data-testid*="card-description"]`,
			fallbackToText:  true,
			baseURL:         "https://www.bbc.com",
			perPageLimit:    25,
			maxItems:        15,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// NewGoalScraper scrapes the Goal.com news listing
func NewGoalScraper(client *http.Client, userAgent string) *SiteScraper {
	return &SiteScraper{
		name: "Goal.com",
		urls: []string{"https://www.goal.com/en/news"},
		rules: siteRules{
			articleSelectors: []string{
				`.widget-news-item, .news-item, article, a[href*="/en/news/"]`,
			},
			titleSelector:   "h3, h2, .title",
			summarySelector: "p, .excerpt",
			fallbackToText:  true,
			baseURL:         "https://www.goal.com",
			perPageLimit:    20,
			maxItems:        15,
		},
		client:    client,
		userAgent: userAgent,
	}
}

// DefaultScrapers returns every HTML site scraper in run order
func DefaultScrapers(client *http.Client, userAgent string) []Scraper {
	return []Scraper{
		NewPremierLeagueScraper(client, userAgent),
		NewFIFAScraper(client, userAgent),
		NewESPNFCScraper(client, userAgent),
		NewSkySportsScraper(client, userAgent),
		NewBBCSportScraper(client, userAgent),
		NewGoalScraper(client, userAgent),
	}
}
