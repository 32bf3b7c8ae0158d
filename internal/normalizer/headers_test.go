package normalizer

import (
	"errors"
	"testing"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		header string
		want   Field
		wantOK bool
	}{
		{"Rank", FieldRank, true},
		{"Rank in 2024", FieldRank, true},
		{"Position", FieldRank, true},
		{"#", FieldRank, true},
		{"School", FieldSchoolName, true},
		{"School Name (2024)", FieldSchoolName, true},
		{"University", FieldSchoolName, true},
		{"Institution", FieldSchoolName, true},
		{"Business School", FieldSchoolName, true},
		{"Programme name", FieldProgramName, true},
		{"Degree", FieldProgramName, true},
		{"Country", FieldCountry, true},
		{"Location", FieldCountry, true},
		{"Campus", FieldCity, true},
		{"Points", FieldScore, true},
		{"Overall Score", "", false},
		{"Remarks", FieldNotes, true},
		{"Website", FieldLink, true},
		{"URL", FieldLink, true},
		{"Weighted salary (US$)", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := MatchHeader(tt.header)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MatchHeader(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMatchHeader_EveryAliasResolvesToItsField(t *testing.T) {
	for _, entry := range headerAliases {
		for _, alias := range entry.aliases {
			got, ok := MatchHeader(alias)
			if !ok {
				t.Errorf("alias %q did not match", alias)

				continue
			}

			if got != entry.field {
				t.Errorf("alias %q resolved to %q, want %q", alias, got, entry.field)
			}

			got, _ = MatchHeader(alias + " (qualifier)")
			if got != entry.field {
				t.Errorf("alias %q with qualifier resolved to %q, want %q", alias, got, entry.field)
			}
		}
	}
}

func TestResolveHeaders(t *testing.T) {
	headers := []string{"Rank", "School", "Weighted salary", "Program", "Country", "Score"}

	got := ResolveHeaders(headers)

	want := HeaderMap{
		0: FieldRank,
		1: FieldSchoolName,
		3: FieldProgramName,
		4: FieldCountry,
		5: FieldScore,
	}

	if len(got) != len(want) {
		t.Fatalf("ResolveHeaders mapped %d columns, want %d: %v", len(got), len(want), got)
	}

	for idx, field := range want {
		if got[idx] != field {
			t.Errorf("column %d = %q, want %q", idx, got[idx], field)
		}
	}

	if _, ok := got[2]; ok {
		t.Errorf("column 2 should be unmapped")
	}

	cols := got.Columns()
	for i := 1; i < len(cols); i++ {
		if cols[i-1] >= cols[i] {
			t.Fatalf("Columns not ascending: %v", cols)
		}
	}
}

func TestHeaderMap_RequireCore(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		wantErr bool
	}{
		{"both present", []string{"Position", "Institution"}, false},
		{"missing school", []string{"Rank", "Country"}, true},
		{"missing rank", []string{"School", "Country"}, true},
		{"neither", []string{"Foo", "Bar"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveHeaders(tt.headers).RequireCore()
			if tt.wantErr && !errors.Is(err, ErrMissingCoreColumns) {
				t.Errorf("RequireCore() = %v, want ErrMissingCoreColumns", err)
			}

			if !tt.wantErr && err != nil {
				t.Errorf("RequireCore() unexpected error: %v", err)
			}
		})
	}
}

func TestHeaderMap_Column(t *testing.T) {
	m := HeaderMap{4: FieldSchoolName, 1: FieldSchoolName, 0: FieldRank}

	col, ok := m.Column(FieldSchoolName)
	if !ok || col != 1 {
		t.Errorf("Column(school_name) = (%d, %v), want (1, true)", col, ok)
	}

	if m.Has(FieldLink) {
		t.Error("Has(link) = true, want false")
	}
}

func TestCanonicalFields_Order(t *testing.T) {
	want := []Field{
		FieldRank, FieldSchoolName, FieldProgramName, FieldCountry,
		FieldCity, FieldScore, FieldNotes, FieldLink,
	}

	got := CanonicalFields()
	if len(got) != len(want) {
		t.Fatalf("CanonicalFields() len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CanonicalFields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
