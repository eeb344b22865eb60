package news

import "testing"

func TestTitleSimilarity_NearIdenticalHeadlines(t *testing.T) {
	a := "Messi scores hat-trick for Barcelona"
	b := "Messi scores a hat-trick for Barcelona"

	sim := TitleSimilarity(a, b)
	if sim < SimilarityThreshold {
		t.Errorf("expected similarity >= %v, got %v", SimilarityThreshold, sim)
	}
}

func TestTitleSimilarity_HeadlineRewrite(t *testing.T) {
	// Same story from two sources, one with a shortened club name. The
	// batch guard has to catch this pair.
	a := "Messi scores hat-trick for Barcelona"
	b := "Messi scores a hat trick for Barca"

	sim := TitleSimilarity(a, b)
	if sim < SimilarityThreshold {
		t.Errorf("expected similarity >= %v, got %v", SimilarityThreshold, sim)
	}
}

func TestTitleSimilarity_DistinctStories(t *testing.T) {
	a := "Messi scores hat-trick for Barcelona"
	b := "Arsenal appoint new sporting director"

	sim := TitleSimilarity(a, b)
	if sim >= SimilarityThreshold {
		t.Errorf("expected similarity below %v, got %v", SimilarityThreshold, sim)
	}
}

func TestTitleSimilarity_EmptyTitles(t *testing.T) {
	if sim := TitleSimilarity("", ""); sim != 0 {
		t.Errorf("two empty titles must yield 0, got %v", sim)
	}
	if sim := TitleSimilarity("Liverpool win", ""); sim != 0 {
		t.Errorf("one empty title must yield 0, got %v", sim)
	}
}

func TestTitleSimilarity_IgnoresShortAndStopWords(t *testing.T) {
	// Differ only in stop words and two-letter words.
	a := "the United in at crisis talks manager"
	b := "United crisis talks manager"

	if sim := TitleSimilarity(a, b); sim != 1.0 {
		t.Errorf("expected 1.0 after stop-word removal, got %v", sim)
	}
}

func TestSharedLeadWords(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"messi scores hat trick for barcelona tonight", "messi scores hat trick for barca", 5},
		{"one two three", "four five six", 0},
		{"", "anything at all", 0},
	}

	for _, c := range cases {
		if got := SharedLeadWords(c.a, c.b); got != c.want {
			t.Errorf("SharedLeadWords(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSharedLeadWords_OnlyFirstTenCount(t *testing.T) {
	a := "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 shared words here"
	b := "shared words here x1 x2 x3 x4 x5 x6 x7"

	// "shared words here" sit past a's tenth word, so they must not count.
	if got := SharedLeadWords(a, b); got != 0 {
		t.Errorf("expected 0 shared lead words, got %d", got)
	}
}

func TestIsNearDuplicate(t *testing.T) {
	published := "Messi scores hat trick for Barcelona in league clash\n\n#Football"

	if !IsNearDuplicate("Messi scores hat trick for Barcelona", "league clash report", published) {
		t.Error("expected near-duplicate against recently published message")
	}

	if IsNearDuplicate("Chelsea name new captain ahead of season", "", published) {
		t.Error("unrelated story must not match recent post")
	}
}
