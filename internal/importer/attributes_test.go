package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Condition
	}{
		{"Near Mint", models.ConditionNearMint},
		{"  near   mint ", models.ConditionNearMint},
		{"NM", models.ConditionNearMint},
		{"Mint", models.ConditionMint},
		{"Good (Lightly Played)", models.ConditionGood},
		{"Heavily Played", models.ConditionPlayed},
		{"Damaged", models.ConditionPoor},
		{"", models.ConditionUnknown},
		{"Pristine", models.ConditionUnknown},
	}
	for _, tt := range tests {
		if got := ParseCondition(tt.raw); got != tt.want {
			t.Errorf("ParseCondition(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		raw  string
		want models.CardLanguage
	}{
		{"English", models.LanguageEnglish},
		{"japanese", models.LanguageJapanese},
		{"Simplified Chinese", models.LanguageChineseSimplified},
		{"Traditional Chinese", models.LanguageChineseTraditional},
		{"PH", models.LanguagePhyrexian},
		{"", models.LanguageUnknown},
		{"Klingon", models.LanguageUnknown},
	}
	for _, tt := range tests {
		if got := ParseLanguage(tt.raw); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParsePrinting(t *testing.T) {
	tests := []struct {
		raw  string
		want models.PrintingType
	}{
		{"", models.PrintingNormal},
		{"false", models.PrintingNormal},
		{"foil", models.PrintingFoil},
		{"true", models.PrintingFoil},
		{"Etched", models.PrintingEtched},
		{"Foil Etched", models.PrintingEtched},
	}
	for _, tt := range tests {
		if got := ParsePrinting(tt.raw); got != tt.want {
			t.Errorf("ParsePrinting(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	for _, raw := range []string{"", "false", "No", "0"} {
		if ParseFlag(raw) {
			t.Errorf("ParseFlag(%q) = true, want false", raw)
		}
	}
	for _, raw := range []string{"promo", "true", "Yes", "1"} {
		if !ParseFlag(raw) {
			t.Errorf("ParseFlag(%q) = false, want true", raw)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"2", 2, false},
		{" 12 ", 12, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"two", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseQuantity(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseQuantity(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
		var pe *ParseError
		if err != nil && !errors.As(err, &pe) {
			t.Errorf("ParseQuantity(%q) error %T is not a *ParseError", tt.raw, err)
		}
	}
}

func TestParseLastUpdated(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"", now, false},
		{"2021-03-04 05:06:07 +0000", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC), false},
		{"2021-03-04T05:06:07Z", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC), false},
		{"2021-03-04 05:06:07", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC), false},
		{"2021-03-04", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), false},
		{"3/4/2021", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseLastUpdated(tt.raw, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLastUpdated(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseLastUpdated(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseBound(t *testing.T) {
	got, err := ParseBound("")
	if err != nil || !got.IsZero() {
		t.Errorf("ParseBound(\"\") = %v, %v; want zero, nil", got, err)
	}

	got, err = ParseBound("2022-01-02")
	if err != nil || !got.Equal(time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseBound(date) = %v, %v", got, err)
	}

	got, err = ParseBound("2022-01-02T03:04:05Z")
	if err != nil || !got.Equal(time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("ParseBound(rfc3339) = %v, %v", got, err)
	}

	if _, err := ParseBound("last week"); err == nil {
		t.Error("ParseBound(\"last week\") should fail")
	}
}

func TestParseUntilBound(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"2024-01-15", time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC), false},
		{"2024-01-15T09:30:00Z", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"tomorrow", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseUntilBound(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUntilBound(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseUntilBound(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
