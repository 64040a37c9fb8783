// Package ledger persists possession records.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/tcg-tracker/collection/internal/importer"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// Ledger appends possessions to collection_items. Identical possessions merge
// into one stack by adding quantity.
type Ledger struct {
	db    *gorm.DB
	runID string
}

// New returns a ledger writing through db, usually a transaction. runID tags
// newly created stacks.
func New(db *gorm.DB, runID string) *Ledger {
	return &Ledger{db: db, runID: runID}
}

func (l *Ledger) AppendPossession(ctx context.Context, p importer.Possession) error {
	db := l.db.WithContext(ctx)

	var existing models.CollectionItem
	err := db.Where(
		"card_id = ? AND condition = ? AND printing = ? AND language = ? AND stamp_prerelease_date = ? AND stamp_promo_symbol = ?",
		p.Card.ID, p.Condition, p.Printing, p.Language, p.StampPrereleaseDate, p.StampPromoSymbol,
	).First(&existing).Error

	if err == nil {
		existing.Quantity += p.Quantity
		if err := db.Save(&existing).Error; err != nil {
			return fmt.Errorf("merge possession into stack %d: %w", existing.ID, err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find stack for card %s: %w", p.Card.ID, err)
	}

	addedAt := p.DateAdded
	if addedAt.IsZero() {
		addedAt = time.Now()
	}
	item := models.CollectionItem{
		CardID:              p.Card.ID,
		Quantity:            p.Quantity,
		Condition:           p.Condition,
		Printing:            p.Printing,
		Language:            p.Language,
		StampPrereleaseDate: p.StampPrereleaseDate,
		StampPromoSymbol:    p.StampPromoSymbol,
		AddedAt:             addedAt,
		ImportRunID:         l.runID,
	}
	if err := db.Create(&item).Error; err != nil {
		return fmt.Errorf("create possession for card %s: %w", p.Card.ID, err)
	}
	return nil
}

// ClearAll deletes every possession record.
func (l *Ledger) ClearAll(ctx context.Context) error {
	err := l.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.CollectionItem{}).Error
	if err != nil {
		return fmt.Errorf("clear possessions: %w", err)
	}
	return nil
}
