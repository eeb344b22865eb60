package news

// Three-layer duplicate detection for one pipeline run. The guards are
// checked in a fixed order and any hit drops the candidate:
//
//  1. exact match: URL or content hash already known to the store,
//  2. same-batch near-duplicate: title similarity against every title
//     accepted earlier in this run,
//  3. recent-publication near-duplicate: lead-word overlap against posts
//     already live on the page.
//
// The URL/hash sets are loaded once per run and grown as candidates are
// accepted, so two copies of a story arriving in the same batch cannot both
// pass before the next persistence flush.
type Deduper struct {
	urls     map[string]struct{}
	hashes   map[string]struct{}
	accepted []string // titles accepted earlier in this run
	recent   []string // messages of recently published posts
}

// DropReason identifies which guard rejected a candidate.
type DropReason string

const (
	DropNone       DropReason = ""
	DropExactURL   DropReason = "url already stored"
	DropExactHash  DropReason = "content hash already stored"
	DropBatchSim   DropReason = "near-duplicate of batch candidate"
	DropRecentPost DropReason = "near-duplicate of recent published post"
)

// NewDeduper builds a Deduper for one run. urls and hashes are the store
// snapshots; recentMessages are the message bodies fetched from the
// publishing API for the recent-history guard.
func NewDeduper(urls, hashes map[string]struct{}, recentMessages []string) *Deduper {
	// Copy the seed sets; Accept grows them and must not mutate the
	// caller's maps.
	u := make(map[string]struct{}, len(urls))
	for k := range urls {
		u[k] = struct{}{}
	}
	h := make(map[string]struct{}, len(hashes))
	for k := range hashes {
		h[k] = struct{}{}
	}
	return &Deduper{
		urls:   u,
		hashes: h,
		recent: recentMessages,
	}
}

// Check runs the three guards against a candidate. hash must be the
// candidate's content hash. It does not mutate the Deduper; call Accept
// once the candidate is actually kept.
func (d *Deduper) Check(a Article, hash string) DropReason {
	if a.URL != "" {
		if _, ok := d.urls[a.URL]; ok {
			return DropExactURL
		}
	}
	if _, ok := d.hashes[hash]; ok {
		return DropExactHash
	}

	for _, title := range d.accepted {
		if TitleSimilarity(a.Title, title) >= SimilarityThreshold {
			return DropBatchSim
		}
	}

	for _, msg := range d.recent {
		if IsNearDuplicate(a.Title, a.Summary, msg) {
			return DropRecentPost
		}
	}

	return DropNone
}

// Accept records an accepted candidate so later candidates in the same run
// are checked against it.
func (d *Deduper) Accept(a Article, hash string) {
	if a.URL != "" {
		d.urls[a.URL] = struct{}{}
	}
	d.hashes[hash] = struct{}{}
	d.accepted = append(d.accepted, a.Title)
}
