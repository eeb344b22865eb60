package news

import "testing"

func TestLooksLikeFootball_AcceptsSoccerContent(t *testing.T) {
	cases := []struct {
		title   string
		summary string
		url     string
	}{
		{"Premier League announces new fixtures", "", ""},
		{"Liverpool complete record transfer", "signing confirmed", ""},
		{"Big win", "", "https://www.skysports.com/football/news/transfer-deadline-report"},
		{"Atlético seal dramatic derby win", "la liga roundup", ""},
	}

	for _, c := range cases {
		if !LooksLikeFootball(c.title, c.summary, c.url) {
			t.Errorf("expected accept for title=%q summary=%q url=%q", c.title, c.summary, c.url)
		}
	}
}

func TestLooksLikeFootball_ExclusionWins(t *testing.T) {
	// "league" and "playoff" both appear, but the American-football
	// exclusion list takes priority over any soccer keyword.
	if LooksLikeFootball("NFL Super Bowl preview", "league playoff special", "") {
		t.Error("expected reject for American football content")
	}

	if LooksLikeFootball("Quarterback injury update", "", "") {
		t.Error("expected reject even though 'injury update' is a soccer keyword")
	}
}

func TestLooksLikeFootball_EmptyInputNeverAccepted(t *testing.T) {
	if LooksLikeFootball("", "", "") {
		t.Error("empty title/summary/url must never be accepted")
	}
}

func TestLooksLikeFootball_NoKeywordsRejected(t *testing.T) {
	if LooksLikeFootball("Stock markets rally on rate cut hopes", "central bank news", "") {
		t.Error("expected reject for unrelated content")
	}
}

func TestLooksLikeFootball_Idempotent(t *testing.T) {
	title, summary, url := "Messi scores twice in cup final", "goal fest", "https://example.com/a"
	first := LooksLikeFootball(title, summary, url)
	second := LooksLikeFootball(title, summary, url)
	if first != second {
		t.Error("filter decision must be a pure function of its input")
	}
	if !first {
		t.Error("expected accept")
	}
}
