package birthdays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://query.wikidata.org/sparql"

// Player is a footballer with an upcoming birthday.
type Player struct {
	Name     string
	DOB      string
	PhotoURL string
}

// Client queries the Wikidata SPARQL endpoint for footballer birthdays.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetWeekBirthdays returns footballers whose birthday falls within the next
// daysAhead days of the given date.
func (c *Client) GetWeekBirthdays(ctx context.Context, now time.Time, daysAhead int) ([]Player, error) {
	query := buildQuery(now.UTC(), daysAhead)

	params := url.Values{}
	params.Set("format", "json")
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("SPARQL error %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Results struct {
			Bindings []map[string]struct {
				Value string `json:"value"`
			} `json:"bindings"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode SPARQL response: %w", err)
	}

	players := make([]Player, 0, len(payload.Results.Bindings))
	for _, binding := range payload.Results.Bindings {
		p := Player{
			Name: binding["playerLabel"].Value,
			DOB:  binding["dob"].Value,
		}
		if image, ok := binding["image"]; ok {
			p.PhotoURL = image.Value
		}
		if p.Name != "" {
			players = append(players, p)
		}
	}

	return players, nil
}

// buildQuery assembles the SPARQL query. SPARQL can extract MONTH() and
// DAY() but not add to dates, so a window that crosses a month boundary
// needs two day ranges.
func buildQuery(now time.Time, daysAhead int) string {
	future := now.AddDate(0, 0, daysAhead)

	startMonth, startDay := int(now.Month()), now.Day()
	endMonth, endDay := int(future.Month()), future.Day()

	var filter string
	if startMonth == endMonth {
		filter = fmt.Sprintf(
			"FILTER(MONTH(?dob) = %d && DAY(?dob) >= %d && DAY(?dob) <= %d)",
			startMonth, startDay, endDay)
	} else {
		filter = fmt.Sprintf(
			"FILTER((MONTH(?dob) = %d && DAY(?dob) >= %d) || (MONTH(?dob) = %d && DAY(?dob) <= %d))",
			startMonth, startDay, endMonth, endDay)
	}

	return fmt.Sprintf(`SELECT ?player ?playerLabel ?dob ?image WHERE {
  ?player wdt:P31 wd:Q5;
          wdt:P106 wd:Q937857;
          wdt:P569 ?dob.
  %s
  OPTIONAL { ?player wdt:P18 ?image. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
LIMIT 100`, filter)
}

// IsBirthdayToday reports whether the player's date of birth matches the
// given day, ignoring the year.
func IsBirthdayToday(p Player, now time.Time) bool {
	dob, err := time.Parse(time.RFC3339, p.DOB)
	if err != nil {
		// Wikidata sometimes returns bare dates.
		dob, err = time.Parse("2006-01-02", p.DOB)
		if err != nil {
			return false
		}
	}
	now = now.UTC()
	return dob.Month() == now.Month() && dob.Day() == now.Day()
}
