package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// conditionMap maps normalized export condition strings to conditions.
var conditionMap = map[string]models.Condition{
	"mint":                  models.ConditionMint,
	"m":                     models.ConditionMint,
	"near mint":             models.ConditionNearMint,
	"nm":                    models.ConditionNearMint,
	"nm/m":                  models.ConditionNearMint,
	"excellent":             models.ConditionExcellent,
	"ex":                    models.ConditionExcellent,
	"good":                  models.ConditionGood,
	"good (lightly played)": models.ConditionGood,
	"gd":                    models.ConditionGood,
	"lightly played":        models.ConditionLightPlay,
	"light play":            models.ConditionLightPlay,
	"lp":                    models.ConditionLightPlay,
	"played":                models.ConditionPlayed,
	"moderately played":     models.ConditionPlayed,
	"heavily played":        models.ConditionPlayed,
	"pl":                    models.ConditionPlayed,
	"hp":                    models.ConditionPlayed,
	"poor":                  models.ConditionPoor,
	"damaged":               models.ConditionPoor,
	"pr":                    models.ConditionPoor,
}

// languageMap maps normalized export language strings to languages.
var languageMap = map[string]models.CardLanguage{
	"english":             models.LanguageEnglish,
	"en":                  models.LanguageEnglish,
	"japanese":            models.LanguageJapanese,
	"jp":                  models.LanguageJapanese,
	"ja":                  models.LanguageJapanese,
	"german":              models.LanguageGerman,
	"de":                  models.LanguageGerman,
	"french":              models.LanguageFrench,
	"fr":                  models.LanguageFrench,
	"italian":             models.LanguageItalian,
	"it":                  models.LanguageItalian,
	"spanish":             models.LanguageSpanish,
	"es":                  models.LanguageSpanish,
	"portuguese":          models.LanguagePortuguese,
	"pt":                  models.LanguagePortuguese,
	"russian":             models.LanguageRussian,
	"ru":                  models.LanguageRussian,
	"korean":              models.LanguageKorean,
	"ko":                  models.LanguageKorean,
	"chinese":             models.LanguageChineseSimplified,
	"simplified chinese":  models.LanguageChineseSimplified,
	"chinese simplified":  models.LanguageChineseSimplified,
	"zhs":                 models.LanguageChineseSimplified,
	"traditional chinese": models.LanguageChineseTraditional,
	"chinese traditional": models.LanguageChineseTraditional,
	"zht":                 models.LanguageChineseTraditional,
	"phyrexian":           models.LanguagePhyrexian,
	"ph":                  models.LanguagePhyrexian,
}

// lastUpdatedLayouts are tried in order.
var lastUpdatedLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseCondition maps a condition column value to a Condition. Unparsable and
// empty input returns ConditionUnknown.
func ParseCondition(raw string) models.Condition {
	if c, ok := conditionMap[normalizeText(raw)]; ok {
		return c
	}
	return models.ConditionUnknown
}

// ParseLanguage maps a language column value to a CardLanguage. Unparsable and
// empty input returns LanguageUnknown.
func ParseLanguage(raw string) models.CardLanguage {
	if l, ok := languageMap[normalizeText(raw)]; ok {
		return l
	}
	return models.LanguageUnknown
}

// ParsePrinting maps the Foil column. Anything other than an etched marker
// counts as foil when the column is non-empty.
func ParsePrinting(raw string) models.PrintingType {
	switch normalizeText(raw) {
	case "", "false", "no", "0", "normal", "nonfoil":
		return models.PrintingNormal
	case "etched", "etched foil", "foil etched":
		return models.PrintingEtched
	default:
		return models.PrintingFoil
	}
}

// ParseFlag reads a marker column such as Promo or Artist Proof.
func ParseFlag(raw string) bool {
	switch normalizeText(raw) {
	case "", "false", "no", "0":
		return false
	default:
		return true
	}
}

// ParseQuantity reads the Count column. An empty count means one copy.
func ParseQuantity(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ParseError{Field: ColumnCount, Value: raw, Err: err}
	}
	if n <= 0 {
		return 0, &ParseError{Field: ColumnCount, Value: raw}
	}
	return n, nil
}

// ParseLastUpdated reads the Last Updated column. An empty value means now.
func ParseLastUpdated(raw string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return now, nil
	}
	for _, layout := range lastUpdatedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Field: ColumnLastUpdated, Value: raw}
}

// ParseBound reads a Since bound given as YYYY-MM-DD or RFC 3339. A date
// means the start of that day. An empty value is an open bound.
func ParseBound(raw string) (time.Time, error) {
	t, _, err := parseBound(raw)
	return t, err
}

// ParseUntilBound reads an Until bound. A date covers the whole day, so it
// becomes the last instant of that day; an RFC 3339 value is used as given.
func ParseUntilBound(raw string) (time.Time, error) {
	t, dateOnly, err := parseBound(raw)
	if err != nil || !dateOnly {
		return t, err
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

func parseBound(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%q is not a date (want YYYY-MM-DD or RFC 3339)", raw)
}
