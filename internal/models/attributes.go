package models

import (
	"strings"
)

type Condition string

const (
	ConditionMint      Condition = "M"
	ConditionNearMint  Condition = "NM"
	ConditionExcellent Condition = "EX"
	ConditionGood      Condition = "GD"
	ConditionLightPlay Condition = "LP"
	ConditionPlayed    Condition = "PL"
	ConditionPoor      Condition = "PR"
	ConditionUnknown   Condition = ""
)

// PrintingType is the finish of a physical copy.
type PrintingType string

const (
	PrintingNormal PrintingType = "Normal"
	PrintingFoil   PrintingType = "Foil"
	PrintingEtched PrintingType = "Etched"
)

// IsFoilVariant returns true if this printing type is a foil finish.
func (p PrintingType) IsFoilVariant() bool {
	return p == PrintingFoil || p == PrintingEtched
}

// CardLanguage represents the language of a physical copy
type CardLanguage string

const (
	LanguageEnglish            CardLanguage = "English"
	LanguageJapanese           CardLanguage = "Japanese"
	LanguageGerman             CardLanguage = "German"
	LanguageFrench             CardLanguage = "French"
	LanguageItalian            CardLanguage = "Italian"
	LanguageSpanish            CardLanguage = "Spanish"
	LanguagePortuguese         CardLanguage = "Portuguese"
	LanguageRussian            CardLanguage = "Russian"
	LanguageKorean             CardLanguage = "Korean"
	LanguageChineseSimplified  CardLanguage = "Chinese Simplified"
	LanguageChineseTraditional CardLanguage = "Chinese Traditional"
	LanguagePhyrexian          CardLanguage = "Phyrexian"
	LanguageUnknown            CardLanguage = ""
)

// AllCardLanguages returns all supported card languages
func AllCardLanguages() []CardLanguage {
	return []CardLanguage{
		LanguageEnglish,
		LanguageJapanese,
		LanguageGerman,
		LanguageFrench,
		LanguageItalian,
		LanguageSpanish,
		LanguagePortuguese,
		LanguageRussian,
		LanguageKorean,
		LanguageChineseSimplified,
		LanguageChineseTraditional,
		LanguagePhyrexian,
	}
}

// AllConditions returns all known conditions, best first.
func AllConditions() []Condition {
	return []Condition{
		ConditionMint,
		ConditionNearMint,
		ConditionExcellent,
		ConditionGood,
		ConditionLightPlay,
		ConditionPlayed,
		ConditionPoor,
	}
}

// NormalizeLanguage maps a stored language value to CardLanguage.
// Returns LanguageEnglish for empty and unknown values; use it only for data
// that is already known to be valid (API filters, migrations).
func NormalizeLanguage(lang string) CardLanguage {
	trimmed := strings.TrimSpace(lang)
	for _, l := range AllCardLanguages() {
		if strings.EqualFold(string(l), trimmed) {
			return l
		}
	}
	return LanguageEnglish
}
