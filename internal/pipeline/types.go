package pipeline

import "time"

// Item is the canonical unit produced by any source type. The Link is the
// item's identity: the aggregator keeps the first item it accepts for a
// given link and drops every later one, regardless of which source it
// came from.
//
// Published is nil when the source carried no date, or none we could
// parse. Such items sort as oldest; they are never an error.
type Item struct {
	Source    string     `json:"source"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary,omitempty"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
}

// publishedRank maps an item onto the sort axis: epoch seconds for dated
// items, 0 for undated ones. Real timestamps in this system are always
// positive, so rank 0 sits below every dated item.
func (it Item) publishedRank() int64 {
	if it.Published == nil {
		return 0
	}
	return it.Published.Unix()
}
