package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Display-name suffixes the catalog uses for derived sets.
const (
	suffixPromos      = " Promos"
	suffixTokens      = " Tokens"
	suffixSubstitutes = " Substitute Cards"
)

var monthYearPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`)

// EditionInput is the subset of a row the classifier looks at.
type EditionInput struct {
	Code         string
	Edition      string
	PrintingNote string
	CardName     string
	Promo        bool
	ArtistProof  bool
}

// Classification is the classifier's best guess about which product a row
// came from. SetNameHint is the display name to resolve against the catalog.
type Classification struct {
	SetCodeHint         string
	SetNameHint         string
	IsPromo             bool
	IsToken             bool
	IsPrereleaseStamp   bool
	HasPromoStamp       bool
	IsSubstituteCard    bool
	IsSetNumberReliable bool
}

// Classify derives a Classification from one row. It never fails; ambiguity
// is left for the resolver and matcher.
func (r *Rules) Classify(in EditionInput) Classification {
	code := strings.ToLower(strings.TrimSpace(in.Code))
	c := Classification{
		SetCodeHint:         code,
		IsPromo:             in.Promo || in.ArtistProof,
		IsSubstituteCard:    r.SubstituteCardName != "" && in.CardName == r.SubstituteCardName,
		IsSetNumberReliable: true,
	}
	dedicated := r.DedicatedPromoCodes[code]
	if dedicated {
		c.IsPromo = true
	}

	if rule, ok := r.misfiledPromo(code, in.CardName); ok {
		c.IsPromo = true
		c.IsToken = rule.Token
		c.IsSetNumberReliable = false
		c.SetNameHint = c.displayName(rule.SetName, false)
		return c
	}

	name := in.Edition
	note := strings.TrimSpace(in.PrintingNote)
	switch {
	case r.NoteEditionCodes[code] && note != "":
		name = note
		c.IsSetNumberReliable = false
	default:
		if seasonal, ok := r.seasonalName(code, note); ok {
			name = seasonal
			c.IsSetNumberReliable = false
		}
	}

	base, promoFromName := r.stripMarkers(name, &c)
	// Promo-only products are already named as such; anything else that is a
	// promo lives in the "<set> Promos" catalog set.
	c.SetNameHint = c.displayName(base, c.IsPromo && (promoFromName || !dedicated))
	return c
}

// displayName applies the substitute suffix first, then the token or promo
// suffix on top of it.
func (c Classification) displayName(base string, promoSuffix bool) string {
	name := base
	if c.IsSubstituteCard {
		name += suffixSubstitutes
	}
	switch {
	case c.IsToken:
		name += suffixTokens
	case promoSuffix:
		name += suffixPromos
	}
	return name
}

func (r *Rules) misfiledPromo(code, cardName string) (MisfiledPromoRule, bool) {
	for _, rule := range r.MisfiledPromos {
		if rule.Code == code && rule.CardName == cardName {
			return rule, true
		}
	}
	return MisfiledPromoRule{}, false
}

func (r *Rules) seasonalName(code, note string) (string, bool) {
	for _, rule := range r.SeasonalCodes {
		if rule.Code != code {
			continue
		}
		m := monthYearPattern.FindStringSubmatch(note)
		if m == nil {
			return "", false
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			return "", false
		}
		return fmt.Sprintf(rule.Template, year), true
	}
	return "", false
}

// stripMarkers removes at most one known prefix and one known suffix, setting
// the flags they imply. It reports whether a promo marker was stripped.
func (r *Rules) stripMarkers(name string, c *Classification) (string, bool) {
	name = strings.TrimSpace(name)
	promo := false

	for _, rule := range r.Prefixes {
		if !strings.HasPrefix(name, rule.Prefix) {
			continue
		}
		name = strings.TrimSpace(strings.TrimPrefix(name, rule.Prefix))
		promo = promo || rule.Promo
		c.IsToken = c.IsToken || rule.Token
		c.IsPrereleaseStamp = c.IsPrereleaseStamp || rule.Prerelease
		c.HasPromoStamp = c.HasPromoStamp || rule.PromoStamp
		break
	}

	for _, rule := range r.Suffixes {
		if !strings.HasSuffix(name, rule.Suffix) {
			continue
		}
		name = strings.TrimSpace(strings.TrimSuffix(name, rule.Suffix))
		promo = promo || rule.Promo
		c.IsToken = c.IsToken || rule.Token
		c.IsPrereleaseStamp = c.IsPrereleaseStamp || rule.Prerelease
		break
	}

	c.IsPromo = c.IsPromo || promo
	return name, promo
}
