package formatter

import (
	"strings"
	"testing"

	"rankings/internal/models"
)

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Rank | School |
| --- | --- |
| 1 | HEC Paris |
`,
			expected: `
| Rank | School    |
| ---- | --------- |
| 1    | HEC Paris |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Rank | School |
| ---------------------- | ---------------------------------- |
| 2 | IE |
`,
			expected: `
| Rank | School |
| ---- | ------ |
| 2    | IE     |
`,
		},
		{
			name: "Mixed content",
			input: `
# MBA 2025

| R | S |
| -- | -- |
| 1 | A |

Text after table.
`,
			expected: `
# MBA 2025

| R   | S   |
| --- | --- |
| 1   | A   |

Text after table.
`,
		},
		{
			name: "Mixed CJK and ASCII",
			input: `
| Rank | School |
| --- | --- |
| 1 | 東京大学 |
| 2 | Short text |
`,
			expected: `
| Rank | School     |
| ---- | ---------- |
| 1    | 東京大学   |
| 2    | Short text |
`,
		},
		{
			name:     "Single line is left alone",
			input:    `| lonely |`,
			expected: `| lonely |`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMarkdown(strings.TrimSpace(tt.input))

			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("FormatMarkdown() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestFormatPayload(t *testing.T) {
	score := 97.3
	region := "Europe"

	payload := models.NewLeaderboardPayload(models.SourceInfo{
		MasterType: "mim",
		Source:     "Financial Times",
		Category:   "Master in Management",
		Year:       2025,
		SourceURL:  "https://rankings.ft.com",
		Region:     &region,
	}, []models.RankingEntry{
		{
			Rank:        1,
			SchoolName:  "HEC Paris",
			ProgramName: models.StringPtr("MiM"),
			Country:     models.StringPtr("France"),
			Score:       &score,
			Link:        models.StringPtr("https://hec.edu"),
		},
		{Rank: 2, SchoolName: "東京大学|Tokyo"},
	})

	got := FormatPayload(payload)

	if !strings.HasPrefix(got, "# Master in Management 2025\n\nSource: Financial Times (https://rankings.ft.com), region Europe, scraped ") {
		t.Errorf("unexpected heading:\n%s", got)
	}

	wantTable := strings.Join([]string{
		"| Rank | School         | Program | Country | City | Score | Link            |",
		"| ---- | -------------- | ------- | ------- | ---- | ----- | --------------- |",
		"| 1    | HEC Paris      | MiM     | France  |      | 97.3  | https://hec.edu |",
		"| 2    | 東京大学/Tokyo |         |         |      |       |                 |",
	}, "\n") + "\n"

	if !strings.HasSuffix(got, wantTable) {
		t.Errorf("FormatPayload() table =\n%s\nwant suffix\n%s", got, wantTable)
	}
}

func TestFormatPayload_TruncatesLongLinks(t *testing.T) {
	long := "https://rankings.example.com/" + strings.Repeat("a", 80)

	payload := models.NewLeaderboardPayload(models.SourceInfo{
		MasterType: "mba",
		Source:     "Financial Times",
		Category:   "MBA",
		Year:       2025,
		SourceURL:  "https://rankings.ft.com",
	}, []models.RankingEntry{
		{Rank: 1, SchoolName: "Wharton", Link: models.StringPtr(long)},
	})

	got := FormatPayload(payload)

	want := long[:MaxLinkWidth] + "..."
	if !strings.Contains(got, "| "+want+" |") {
		t.Errorf("FormatPayload() missing truncated link %q:\n%s", want, got)
	}

	if strings.Contains(got, long) {
		t.Error("FormatPayload() kept the full link")
	}
}
