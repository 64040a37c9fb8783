package importer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		in   EditionInput
		want Classification
	}{
		{
			name: "plain expansion",
			in:   EditionInput{Code: "ULG", Edition: "Urza's Legacy", CardName: "Lord of Tresserhorn"},
			want: Classification{SetCodeHint: "ulg", SetNameHint: "Urza's Legacy", IsSetNumberReliable: true},
		},
		{
			name: "prerelease prefix",
			in:   EditionInput{Code: "pthb", Edition: "Prerelease Events: Theros Beyond Death", CardName: "Nyxbloom Ancient"},
			want: Classification{
				SetCodeHint:         "pthb",
				SetNameHint:         "Theros Beyond Death Promos",
				IsPromo:             true,
				IsPrereleaseStamp:   true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "promo pack prefix",
			in:   EditionInput{Code: "peld", Edition: "Promo Pack: Throne of Eldraine", CardName: "Fling"},
			want: Classification{
				SetCodeHint:         "peld",
				SetNameHint:         "Throne of Eldraine Promos",
				IsPromo:             true,
				HasPromoStamp:       true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "tokens prefix",
			in:   EditionInput{Code: "tznr", Edition: "Extras: Zendikar Rising", CardName: "Kor Warrior"},
			want: Classification{
				SetCodeHint:         "tznr",
				SetNameHint:         "Zendikar Rising Tokens",
				IsToken:             true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "promo flag adds suffix",
			in:   EditionInput{Code: "m20", Edition: "Core Set 2020", CardName: "Chandra's Regulator", Promo: true},
			want: Classification{
				SetCodeHint:         "m20",
				SetNameHint:         "Core Set 2020 Promos",
				IsPromo:             true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "artist proof counts as promo",
			in:   EditionInput{Code: "m20", Edition: "Core Set 2020", CardName: "Shock", ArtistProof: true},
			want: Classification{
				SetCodeHint:         "m20",
				SetNameHint:         "Core Set 2020 Promos",
				IsPromo:             true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "dedicated promo code keeps its name",
			in:   EditionInput{Code: "pjgp", Edition: "Judge Gift Cards", CardName: "Vindicate"},
			want: Classification{
				SetCodeHint:         "pjgp",
				SetNameHint:         "Judge Gift Cards",
				IsPromo:             true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "misfiled promo routed by card name",
			in:   EditionInput{Code: "pmei", Edition: "Media Inserts", CardName: "Arena"},
			want: Classification{
				SetCodeHint: "pmei",
				SetNameHint: "HarperPrism Book Promos",
				IsPromo:     true,
			},
		},
		{
			name: "note edition uses printing note",
			in:   EditionInput{Code: "pwpn", Edition: "Wizards Play Network", PrintingNote: "Gateway 2007", CardName: "Fiery Temper"},
			want: Classification{
				SetCodeHint: "pwpn",
				SetNameHint: "Gateway 2007",
				IsPromo:     true,
			},
		},
		{
			name: "note edition without note keeps edition",
			in:   EditionInput{Code: "pwpn", Edition: "Wizards Play Network", CardName: "Fiery Temper"},
			want: Classification{
				SetCodeHint:         "pwpn",
				SetNameHint:         "Wizards Play Network",
				IsPromo:             true,
				IsSetNumberReliable: true,
			},
		},
		{
			name: "seasonal month year",
			in:   EditionInput{Code: "FNM", Edition: "Friday Night Magic", PrintingNote: "March 2004", CardName: "Goblin Bombardment"},
			want: Classification{
				SetCodeHint: "fnm",
				SetNameHint: "Friday Night Magic 2004",
				IsPromo:     true,
			},
		},
		{
			name: "substitute card",
			in:   EditionInput{Code: "mid", Edition: "Innistrad: Midnight Hunt", CardName: "Substitute Card"},
			want: Classification{
				SetCodeHint:         "mid",
				SetNameHint:         "Innistrad: Midnight Hunt Substitute Cards",
				IsSubstituteCard:    true,
				IsSetNumberReliable: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.Classify(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_StripsOnlyOnePrefix(t *testing.T) {
	got := DefaultRules().Classify(EditionInput{Edition: "Extras: Tokens: Odd Set"})
	if got.SetNameHint != "Tokens: Odd Set Tokens" {
		t.Errorf("SetNameHint = %q, want %q", got.SetNameHint, "Tokens: Odd Set Tokens")
	}
}
