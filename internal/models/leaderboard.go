// Package models defines data structures shared by the adapters, the normalizer and the CLIs.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
)

// ScrapedAtLayout is the ISO-8601 layout used for the capture timestamp.
const ScrapedAtLayout = "2006-01-02T15:04:05.000000Z"

// RankingEntry is one normalized leaderboard row.
type RankingEntry struct {
	ProgramName *string        `json:"program_name"`
	Country     *string        `json:"country"`
	City        *string        `json:"city"`
	Score       *float64       `json:"score"`
	Notes       *string        `json:"notes"`
	Link        *string        `json:"link"`
	Metadata    map[string]any `json:"metadata"`
	SchoolName  string         `json:"school_name"`
	Rank        int            `json:"rank"`
}

// rankingEntryJSON fixes the key order of the wire format.
type rankingEntryJSON struct {
	Rank        int            `json:"rank"`
	SchoolName  string         `json:"school_name"`
	ProgramName *string        `json:"program_name"`
	Country     *string        `json:"country"`
	City        *string        `json:"city"`
	Score       *float64       `json:"score"`
	Notes       *string        `json:"notes"`
	Link        *string        `json:"link"`
	Metadata    map[string]any `json:"metadata"`
}

// MarshalJSON emits the entry with stable key order; metadata is always an object.
func (e RankingEntry) MarshalJSON() ([]byte, error) {
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	return marshalUnescaped(rankingEntryJSON{
		Rank:        e.Rank,
		SchoolName:  e.SchoolName,
		ProgramName: e.ProgramName,
		Country:     e.Country,
		City:        e.City,
		Score:       e.Score,
		Notes:       e.Notes,
		Link:        e.Link,
		Metadata:    meta,
	})
}

// UnmarshalJSON reads the wire format back into an entry.
func (e *RankingEntry) UnmarshalJSON(data []byte) error {
	var raw rankingEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = RankingEntry{
		Rank:        raw.Rank,
		SchoolName:  raw.SchoolName,
		ProgramName: raw.ProgramName,
		Country:     raw.Country,
		City:        raw.City,
		Score:       raw.Score,
		Notes:       raw.Notes,
		Link:        raw.Link,
		Metadata:    raw.Metadata,
	}

	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}

	return nil
}

// SourceInfo identifies where a leaderboard comes from.
type SourceInfo struct {
	Region     *string
	MasterType string
	Source     string
	Category   string
	SourceURL  string
	Year       int
}

// LeaderboardPayload is one ranking snapshot ready to be emitted.
// Construction does not validate it.
type LeaderboardPayload struct {
	scrapedAt  time.Time
	Region     *string
	MasterType string
	Source     string
	Category   string
	SourceURL  string
	Entries    []RankingEntry
	Year       int
}

// NewLeaderboardPayload wraps entries with their source info and stamps the capture time.
func NewLeaderboardPayload(info SourceInfo, entries []RankingEntry) *LeaderboardPayload {
	return NewLeaderboardPayloadWithClock(info, entries, clock.New())
}

// NewLeaderboardPayloadWithClock is NewLeaderboardPayload reading the capture time from clk.
func NewLeaderboardPayloadWithClock(info SourceInfo, entries []RankingEntry, clk clock.Clock) *LeaderboardPayload {
	return &LeaderboardPayload{
		MasterType: info.MasterType,
		Source:     info.Source,
		Category:   info.Category,
		Year:       info.Year,
		SourceURL:  info.SourceURL,
		Region:     info.Region,
		Entries:    entries,
		scrapedAt:  clk.Now().UTC(),
	}
}

// ScrapedAt returns the UTC capture timestamp.
func (p *LeaderboardPayload) ScrapedAt() time.Time {
	return p.scrapedAt
}

// Info returns the source info the payload was built from.
func (p *LeaderboardPayload) Info() SourceInfo {
	return SourceInfo{
		MasterType: p.MasterType,
		Source:     p.Source,
		Category:   p.Category,
		Year:       p.Year,
		SourceURL:  p.SourceURL,
		Region:     p.Region,
	}
}

type leaderboardPayloadJSON struct {
	MasterType string         `json:"master_type"`
	Source     string         `json:"source"`
	Category   string         `json:"category"`
	Year       int            `json:"year"`
	SourceURL  string         `json:"source_url"`
	Region     *string        `json:"region"`
	Entries    []RankingEntry `json:"entries"`
	ScrapedAt  string         `json:"scraped_at"`
}

// MarshalJSON emits the payload with the key order downstream consumers expect.
func (p *LeaderboardPayload) MarshalJSON() ([]byte, error) {
	entries := p.Entries
	if entries == nil {
		entries = []RankingEntry{}
	}

	return marshalUnescaped(leaderboardPayloadJSON{
		MasterType: p.MasterType,
		Source:     p.Source,
		Category:   p.Category,
		Year:       p.Year,
		SourceURL:  p.SourceURL,
		Region:     p.Region,
		Entries:    entries,
		ScrapedAt:  p.scrapedAt.Format(ScrapedAtLayout),
	})
}

// UnmarshalJSON restores a payload, including its original capture timestamp.
func (p *LeaderboardPayload) UnmarshalJSON(data []byte) error {
	var raw leaderboardPayloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var scrapedAt time.Time

	if raw.ScrapedAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw.ScrapedAt)
		if err != nil {
			return fmt.Errorf("invalid scraped_at %q: %w", raw.ScrapedAt, err)
		}

		scrapedAt = parsed.UTC()
	}

	*p = LeaderboardPayload{
		MasterType: raw.MasterType,
		Source:     raw.Source,
		Category:   raw.Category,
		Year:       raw.Year,
		SourceURL:  raw.SourceURL,
		Region:     raw.Region,
		Entries:    raw.Entries,
		scrapedAt:  scrapedAt,
	}

	return nil
}

// marshalUnescaped keeps "&", "<" and ">" verbatim so school names survive as written.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
