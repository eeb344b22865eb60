package news

import "time"

const (
	// PostSpacing is the fixed gap between consecutive scheduled posts.
	PostSpacing = 2 * time.Hour

	// MinLead is Facebook's minimum gap between "now" and a scheduled
	// publish time.
	MinLead = 10 * time.Minute

	// LeadMargin is the safety margin used when a slot has to be pushed
	// past the minimum lead.
	LeadMargin = 11 * time.Minute
)

// nextHour rounds t up to the next full hour boundary in UTC.
func nextHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour).Add(time.Hour)
}

// NextSlot computes the publish time for the next post. lastScheduled is
// the maximum scheduled time across all records, or nil when nothing has
// ever been scheduled.
//
// The slot is lastScheduled + PostSpacing when one exists, otherwise the
// next hour boundary after now. Either way the result must sit strictly
// after now + MinLead; a slot that does not is reset to now + LeadMargin
// and re-rounded up to the next hour, so it can never land in the past.
// All arithmetic is in UTC.
func NextSlot(lastScheduled *time.Time, now time.Time) time.Time {
	now = now.UTC()

	var slot time.Time
	if lastScheduled != nil {
		slot = lastScheduled.UTC().Add(PostSpacing)
	} else {
		slot = nextHour(now)
	}

	if !slot.After(now.Add(MinLead)) {
		slot = nextHour(now.Add(LeadMargin))
	}

	return slot
}
