package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PrefixRule strips a leading edition marker and records what it implied.
type PrefixRule struct {
	Prefix     string `yaml:"prefix"`
	Promo      bool   `yaml:"promo"`
	Token      bool   `yaml:"token"`
	Prerelease bool   `yaml:"prerelease"`
	PromoStamp bool   `yaml:"promo_stamp"`
}

// SuffixRule strips a trailing edition marker.
type SuffixRule struct {
	Suffix     string `yaml:"suffix"`
	Promo      bool   `yaml:"promo"`
	Token      bool   `yaml:"token"`
	Prerelease bool   `yaml:"prerelease"`
}

// MisfiledPromoRule routes one card filed under a shared promo code to the
// product it really came from.
type MisfiledPromoRule struct {
	Code     string `yaml:"code"`
	CardName string `yaml:"card_name"`
	SetName  string `yaml:"set_name"`
	Token    bool   `yaml:"token"`
}

// SeasonalRule turns a "Month Year" printing note into an edition name.
// Template receives the year.
type SeasonalRule struct {
	Code     string `yaml:"code"`
	Template string `yaml:"template"`
}

// CardSetRule pins a card filed under an ambiguous legacy code to a set.
type CardSetRule struct {
	Code     string `yaml:"code"`
	CardName string `yaml:"card_name"`
	SetCode  string `yaml:"set_code"`
}

// NumberOverride replaces one observed collector number of one card.
type NumberOverride struct {
	CardName    string `yaml:"card_name"`
	Number      string `yaml:"number"`
	Replacement string `yaml:"replacement"`
}

// OffsetRange shifts collector numbers in [From, To) by Offset.
type OffsetRange struct {
	From   int `yaml:"from"`
	To     int `yaml:"to"`
	Offset int `yaml:"offset"`
}

func (r OffsetRange) contains(n int) bool {
	return n >= r.From && n < r.To
}

// Rules holds every lookup table used to reconcile legacy rows. A Rules value
// is never modified after construction; Merge returns a new one.
type Rules struct {
	MisfiledPromos      []MisfiledPromoRule
	NoteEditionCodes    map[string]bool
	SeasonalCodes       []SeasonalRule
	Prefixes            []PrefixRule
	Suffixes            []SuffixRule
	DedicatedPromoCodes map[string]bool
	SubstituteCardName  string

	ScanningSets     map[string]string
	CardSetOverrides []CardSetRule
	Aliases          map[string]string

	NumberOverrides []NumberOverride
	OffsetTables    map[string][]OffsetRange
}

// DefaultRules returns the built-in tables.
func DefaultRules() *Rules {
	r := &Rules{
		MisfiledPromos:      append([]MisfiledPromoRule(nil), misfiledPromos...),
		NoteEditionCodes:    toSet(noteEditionCodes),
		SeasonalCodes:       append([]SeasonalRule(nil), seasonalCodes...),
		Prefixes:            append([]PrefixRule(nil), editionPrefixes...),
		Suffixes:            append([]SuffixRule(nil), editionSuffixes...),
		DedicatedPromoCodes: toSet(dedicatedPromoCodes),
		SubstituteCardName:  substituteCardName,
		ScanningSets:        copyMap(scanningSets),
		CardSetOverrides:    append([]CardSetRule(nil), cardSetOverrides...),
		Aliases:             copyMap(setCodeAliases),
		NumberOverrides:     append([]NumberOverride(nil), numberOverrides...),
		OffsetTables:        make(map[string][]OffsetRange, len(offsetTables)),
	}
	for name, ranges := range offsetTables {
		r.OffsetTables[name] = append([]OffsetRange(nil), ranges...)
	}
	return r
}

// Validate checks table invariants: offset ranges must be non-empty and must
// not overlap within a set.
func (r *Rules) Validate() error {
	var errs []error
	for name, ranges := range r.OffsetTables {
		sorted := append([]OffsetRange(nil), ranges...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
		for i, rg := range sorted {
			if rg.From >= rg.To {
				errs = append(errs, fmt.Errorf("offset table %q: empty range [%d,%d)", name, rg.From, rg.To))
			}
			if i > 0 && rg.From < sorted[i-1].To {
				errs = append(errs, fmt.Errorf("offset table %q: range [%d,%d) overlaps [%d,%d)",
					name, rg.From, rg.To, sorted[i-1].From, sorted[i-1].To))
			}
		}
	}
	for _, o := range r.NumberOverrides {
		if o.CardName == "" || o.Number == "" {
			errs = append(errs, fmt.Errorf("number override %+v: card name and number are required", o))
		}
	}
	return errors.Join(errs...)
}

// RuleOverrides extends the built-in tables. List entries take precedence
// over built-in entries; map entries replace built-in keys.
type RuleOverrides struct {
	Aliases             map[string]string        `yaml:"aliases"`
	DedicatedPromoCodes []string                 `yaml:"dedicated_promo_codes"`
	NoteEditionCodes    []string                 `yaml:"note_edition_codes"`
	ScanningSets        map[string]string        `yaml:"scanning_sets"`
	MisfiledPromos      []MisfiledPromoRule      `yaml:"misfiled_promos"`
	CardSetOverrides    []CardSetRule            `yaml:"card_set_overrides"`
	NumberOverrides     []NumberOverride         `yaml:"number_overrides"`
	OffsetTables        map[string][]OffsetRange `yaml:"offset_tables"`
}

// ParseRuleOverrides decodes a YAML overrides document. Unknown keys are
// rejected so a typo does not silently disable a rule.
func ParseRuleOverrides(r io.Reader) (*RuleOverrides, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var o RuleOverrides
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rule overrides: %w", err)
	}
	return &o, nil
}

// LoadRuleOverrides reads a YAML overrides file.
func LoadRuleOverrides(path string) (*RuleOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule overrides: %w", err)
	}
	return ParseRuleOverrides(bytes.NewReader(data))
}

// LoadRules returns the built-in rules extended with the overrides file at
// path. An empty path means the built-in rules alone.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	o, err := LoadRuleOverrides(path)
	if err != nil {
		return nil, err
	}
	rules, err := DefaultRules().Merge(o)
	if err != nil {
		return nil, fmt.Errorf("rule overrides %s: %w", path, err)
	}
	return rules, nil
}

// Merge returns a copy of r extended with o, validated.
func (r *Rules) Merge(o *RuleOverrides) (*Rules, error) {
	out := r.clone()
	if o == nil {
		return out, nil
	}

	for k, v := range o.Aliases {
		out.Aliases[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range o.ScanningSets {
		out.ScanningSets[strings.ToLower(k)] = strings.ToLower(v)
	}
	for _, c := range o.DedicatedPromoCodes {
		out.DedicatedPromoCodes[strings.ToLower(c)] = true
	}
	for _, c := range o.NoteEditionCodes {
		out.NoteEditionCodes[strings.ToLower(c)] = true
	}
	misfiled := make([]MisfiledPromoRule, 0, len(o.MisfiledPromos)+len(out.MisfiledPromos))
	for _, rule := range o.MisfiledPromos {
		rule.Code = strings.ToLower(strings.TrimSpace(rule.Code))
		misfiled = append(misfiled, rule)
	}
	out.MisfiledPromos = append(misfiled, out.MisfiledPromos...)

	cardSets := make([]CardSetRule, 0, len(o.CardSetOverrides)+len(out.CardSetOverrides))
	for _, rule := range o.CardSetOverrides {
		rule.Code = strings.ToLower(strings.TrimSpace(rule.Code))
		rule.SetCode = strings.ToLower(strings.TrimSpace(rule.SetCode))
		cardSets = append(cardSets, rule)
	}
	out.CardSetOverrides = append(cardSets, out.CardSetOverrides...)
	out.NumberOverrides = append(append([]NumberOverride(nil), o.NumberOverrides...), out.NumberOverrides...)
	for name, ranges := range o.OffsetTables {
		out.OffsetTables[name] = append([]OffsetRange(nil), ranges...)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Rules) clone() *Rules {
	out := *r
	out.MisfiledPromos = append([]MisfiledPromoRule(nil), r.MisfiledPromos...)
	out.NoteEditionCodes = copyMap(r.NoteEditionCodes)
	out.SeasonalCodes = append([]SeasonalRule(nil), r.SeasonalCodes...)
	out.Prefixes = append([]PrefixRule(nil), r.Prefixes...)
	out.Suffixes = append([]SuffixRule(nil), r.Suffixes...)
	out.DedicatedPromoCodes = copyMap(r.DedicatedPromoCodes)
	out.ScanningSets = copyMap(r.ScanningSets)
	out.CardSetOverrides = append([]CardSetRule(nil), r.CardSetOverrides...)
	out.Aliases = copyMap(r.Aliases)
	out.NumberOverrides = append([]NumberOverride(nil), r.NumberOverrides...)
	out.OffsetTables = make(map[string][]OffsetRange, len(r.OffsetTables))
	for name, ranges := range r.OffsetTables {
		out.OffsetTables[name] = append([]OffsetRange(nil), ranges...)
	}
	return &out
}

func toSet(keys []string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
