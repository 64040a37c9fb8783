package models

import (
	"time"
)

// CollectionItem is one possession record: owned copies of a single printing
// with identical attributes.
type CollectionItem struct {
	ID                  uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID              string       `json:"card_id" gorm:"not null;index"`
	Card                Card         `json:"card" gorm:"foreignKey:CardID"`
	Quantity            int          `json:"quantity" gorm:"default:1"`
	Condition           Condition    `json:"condition" gorm:"default:'NM'"`
	Printing            PrintingType `json:"printing" gorm:"default:'Normal'"`
	Language            CardLanguage `json:"language" gorm:"default:'English'"`
	StampPrereleaseDate bool         `json:"stamp_prerelease_date"`
	StampPromoSymbol    bool         `json:"stamp_promo_symbol"`
	Notes               string       `json:"notes"`
	AddedAt             time.Time    `json:"added_at"`
	ImportRunID         string       `json:"import_run_id" gorm:"index"`
}

type CollectionStats struct {
	TotalCards  int            `json:"total_cards"`
	UniqueCards int            `json:"unique_cards"`
	FoilCards   int            `json:"foil_cards"`
	BySet       map[string]int `json:"by_set"`
}

// ImportRun records one batch import and its aggregate outcome.
type ImportRun struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Source        string     `json:"source"`
	Cleared       bool       `json:"cleared"`
	Imported      int        `json:"imported"`
	SkippedByDate int        `json:"skipped_by_date"`
	Rejected      int        `json:"rejected"`
	RejectFile    string     `json:"reject_file,omitempty"`
	Error         string     `json:"error,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
}

type ImportRunListResult struct {
	Runs       []ImportRun `json:"runs"`
	TotalCount int         `json:"total_count"`
}
