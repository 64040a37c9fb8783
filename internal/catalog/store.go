// Package catalog reads the canonical set and card catalog from the database.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-tracker/collection/internal/metrics"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// DefaultCacheSize is the number of per-set card lists kept in memory.
const DefaultCacheSize = 256

// Store is a read-only view of the catalog. Card lists are cached per set
// code for the lifetime of the Store; create one Store per import run.
type Store struct {
	db    *gorm.DB
	cards *lru.Cache[string, []models.Card] // set code -> cards
}

func NewStore(db *gorm.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cards, err := lru.New[string, []models.Card](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create card cache: %w", err)
	}
	return &Store{db: db, cards: cards}, nil
}

// AllSets returns every set ordered by code.
func (s *Store) AllSets(ctx context.Context) ([]models.Set, error) {
	var sets []models.Set
	if err := s.db.WithContext(ctx).Order("code").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

// FindSetByCode returns nil, nil when no set has the code.
func (s *Store) FindSetByCode(ctx context.Context, code string) (*models.Set, error) {
	var set models.Set
	err := s.db.WithContext(ctx).First(&set, "code = ?", strings.ToLower(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find set %q: %w", code, err)
	}
	return &set, nil
}

// FindSetByName returns the code of the set with exactly this name.
func (s *Store) FindSetByName(ctx context.Context, name string) (string, bool, error) {
	var set models.Set
	err := s.db.WithContext(ctx).First(&set, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find set named %q: %w", name, err)
	}
	return set.Code, true, nil
}

// FindCardsInSet returns every printing in the set. The returned slice is
// shared with the cache and must not be modified.
func (s *Store) FindCardsInSet(ctx context.Context, code string) ([]models.Card, error) {
	code = strings.ToLower(code)
	if cards, ok := s.cards.Get(code); ok {
		metrics.CatalogCacheHits.Inc()
		return cards, nil
	}
	metrics.CatalogCacheMisses.Inc()

	var cards []models.Card
	if err := s.db.WithContext(ctx).Where("set_code = ?", code).Order("card_number").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards in set %q: %w", code, err)
	}
	s.cards.Add(code, cards)
	return cards, nil
}
