package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

func TestDefaultRules_Valid(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}

func TestDefaultRules_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultRules()
	a.Aliases["gu"] = "xxx"
	a.OffsetTables["Fifth Edition"][0].Offset = 0

	b := DefaultRules()
	assert.Equal(t, "ulg", b.Aliases["gu"])
	assert.Equal(t, 138, b.OffsetTables["Fifth Edition"][0].Offset)
}

func TestValidate_RejectsBadRanges(t *testing.T) {
	r := DefaultRules()
	r.OffsetTables["Broken"] = []OffsetRange{
		{From: 10, To: 20, Offset: 1},
		{From: 15, To: 25, Offset: 2},
		{From: 30, To: 30, Offset: 3},
	}

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
	assert.Contains(t, err.Error(), "empty range")
}

func TestParseRuleOverrides(t *testing.T) {
	doc := `
aliases:
  ZZ: ZEN
dedicated_promo_codes: [pxyz]
number_overrides:
  - card_name: Lightning Bolt
    number: "161"
    replacement: "161s"
offset_tables:
  Fifth Edition:
    - {from: 1, to: 10, offset: 5}
`
	o, err := ParseRuleOverrides(strings.NewReader(doc))
	require.NoError(t, err)

	base := DefaultRules()
	merged, err := base.Merge(o)
	require.NoError(t, err)

	assert.Equal(t, "zen", merged.Aliases["zz"])
	assert.True(t, merged.DedicatedPromoCodes["pxyz"])
	assert.Equal(t, "161s", merged.RemapNumber("161", "Alpha", "Lightning Bolt", ""))
	assert.Equal(t, "8", merged.RemapNumber("3", "Fifth Edition", "", ""))
	assert.Equal(t, "50", merged.RemapNumber("50", "Fifth Edition", "", ""))

	// The base value is untouched.
	assert.NotContains(t, base.Aliases, "zz")
	assert.Equal(t, "143", base.RemapNumber("5", "Fifth Edition", "", ""))
}

func TestMerge_NormalizesRuleCodes(t *testing.T) {
	doc := `
misfiled_promos:
  - {code: PXYZ, card_name: Foo, set_name: Whatever}
card_set_overrides:
  - {code: " GU ", card_name: Bar, set_code: THB}
`
	o, err := ParseRuleOverrides(strings.NewReader(doc))
	require.NoError(t, err)
	merged, err := DefaultRules().Merge(o)
	require.NoError(t, err)

	c := merged.Classify(EditionInput{Code: "PXYZ", Edition: "Something Else", CardName: "Foo"})
	assert.Equal(t, "Whatever", c.SetNameHint)
	assert.True(t, c.IsPromo)
	assert.False(t, c.IsSetNumberReliable)

	sets := NewSetSnapshot([]models.Set{
		{Code: "ulg", Name: "Urza's Legacy"},
		{Code: "thb", Name: "Theros Beyond Death"},
	})
	bar := merged.Classify(EditionInput{Code: "gu", Edition: "Urza's Legacy", CardName: "Bar"})
	assert.Equal(t, "thb", merged.ResolveSet(bar, "Bar", sets))
}

func TestParseRuleOverrides_UnknownKey(t *testing.T) {
	_, err := ParseRuleOverrides(strings.NewReader("alias:\n  zz: zen\n"))
	assert.Error(t, err)
}

func TestParseRuleOverrides_Empty(t *testing.T) {
	o, err := ParseRuleOverrides(strings.NewReader(""))
	require.NoError(t, err)

	merged, err := DefaultRules().Merge(o)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules().Aliases, merged.Aliases)
}

func TestMerge_RejectsOverlappingOffsets(t *testing.T) {
	o := &RuleOverrides{OffsetTables: map[string][]OffsetRange{
		"Portal": {{From: 1, To: 10}, {From: 5, To: 15}},
	}}
	_, err := DefaultRules().Merge(o)
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, "ulg", rules.Aliases["gu"])

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanning_sets:\n  mb1: plst\n"), 0o644))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "plst", rules.ScanningSets["mb1"])

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
