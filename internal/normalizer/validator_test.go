package normalizer

import (
	"errors"
	"strings"
	"testing"

	"rankings/internal/models"
)

func validPayload() *models.LeaderboardPayload {
	return models.NewLeaderboardPayload(models.SourceInfo{
		MasterType: "mim",
		Source:     "Financial Times",
		Category:   "Master in Management",
		Year:       2025,
		SourceURL:  "https://rankings.ft.com",
	}, []models.RankingEntry{
		{Rank: 1, SchoolName: "HEC Paris"},
		{Rank: 2, SchoolName: "ESCP"},
	})
}

func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
}

func TestValidator_Validate(t *testing.T) {
	if err := NewValidator().Validate(validPayload()); err != nil {
		t.Errorf("Validate returned unexpected error for valid payload: %v", err)
	}
}

func TestValidator_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.LeaderboardPayload)
		wantErr error
		wantMsg string
	}{
		{
			name:    "year before 1900",
			mutate:  func(p *models.LeaderboardPayload) { p.Year = 1899 },
			wantErr: ErrInvalidYear,
			wantMsg: "year must be >= 1900",
		},
		{
			name:    "blank master type",
			mutate:  func(p *models.LeaderboardPayload) { p.MasterType = "  " },
			wantErr: ErrMissingMasterType,
			wantMsg: "master_type is required",
		},
		{
			name:    "missing source",
			mutate:  func(p *models.LeaderboardPayload) { p.Source = "" },
			wantErr: ErrMissingSource,
			wantMsg: "source is required",
		},
		{
			name:    "missing category",
			mutate:  func(p *models.LeaderboardPayload) { p.Category = "" },
			wantErr: ErrMissingCategory,
			wantMsg: "category is required",
		},
		{
			name:    "missing source url",
			mutate:  func(p *models.LeaderboardPayload) { p.SourceURL = "\t" },
			wantErr: ErrMissingSourceURL,
			wantMsg: "source_url is required",
		},
		{
			name:    "no entries",
			mutate:  func(p *models.LeaderboardPayload) { p.Entries = nil },
			wantErr: ErrNoEntries,
			wantMsg: "entries must not be empty",
		},
		{
			name:    "entry with zero rank",
			mutate:  func(p *models.LeaderboardPayload) { p.Entries[1].Rank = 0 },
			wantErr: ErrInvalidRank,
			wantMsg: "at index 1",
		},
		{
			name:    "entry with blank school",
			mutate:  func(p *models.LeaderboardPayload) { p.Entries[0].SchoolName = " " },
			wantErr: ErrMissingSchoolName,
			wantMsg: "school_name is required at index 0",
		},
		{
			name: "first violation wins",
			mutate: func(p *models.LeaderboardPayload) {
				p.Year = 10
				p.Source = ""
			},
			wantErr: ErrInvalidYear,
			wantMsg: "year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			err := NewValidator().Validate(p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate error = %v, want %v", err, tt.wantErr)
			}

			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidator_Validate_Nil(t *testing.T) {
	if err := NewValidator().Validate(nil); !errors.Is(err, ErrNilPayload) {
		t.Errorf("Validate(nil) = %v, want ErrNilPayload", err)
	}
}
