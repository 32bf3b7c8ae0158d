package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"rankings/internal/models"
)

// MinYear is the earliest accepted ranking year.
const MinYear = 1900

// Validation errors.
var (
	ErrNilPayload        = errors.New("payload is nil")
	ErrInvalidYear       = errors.New("year must be >= 1900")
	ErrMissingMasterType = errors.New("master_type is required")
	ErrMissingSource     = errors.New("source is required")
	ErrMissingCategory   = errors.New("category is required")
	ErrMissingSourceURL  = errors.New("source_url is required")
	ErrNoEntries         = errors.New("entries must not be empty")
	ErrInvalidRank       = errors.New("rank must be >= 1")
	ErrMissingSchoolName = errors.New("school_name is required")
)

// Validator checks leaderboard payload invariants.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the first violated constraint, or nil when the payload can be emitted.
func (v *Validator) Validate(payload *models.LeaderboardPayload) error {
	if payload == nil {
		return ErrNilPayload
	}

	if payload.Year < MinYear {
		return fmt.Errorf("%w: got %d", ErrInvalidYear, payload.Year)
	}

	if isBlank(payload.MasterType) {
		return ErrMissingMasterType
	}

	if isBlank(payload.Source) {
		return ErrMissingSource
	}

	if isBlank(payload.Category) {
		return ErrMissingCategory
	}

	if isBlank(payload.SourceURL) {
		return ErrMissingSourceURL
	}

	if len(payload.Entries) == 0 {
		return ErrNoEntries
	}

	for i, entry := range payload.Entries {
		if err := v.ValidateEntry(entry); err != nil {
			return fmt.Errorf("%w at index %d", err, i)
		}
	}

	return nil
}

// ValidateEntry checks a single entry.
func (v *Validator) ValidateEntry(entry models.RankingEntry) error {
	if entry.Rank < 1 {
		return ErrInvalidRank
	}

	if isBlank(entry.SchoolName) {
		return ErrMissingSchoolName
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
