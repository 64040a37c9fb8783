package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// promoMarker prefixes catalog promo set codes ("pthb" for "thb").
const promoMarker = "p"

// CardSource lists the printings of one set.
type CardSource interface {
	FindCardsInSet(ctx context.Context, code string) ([]models.Card, error)
}

// MatchQuery is what the matcher is asked to find. An empty Number skips the
// number strategy; an empty Name disables name filtering.
type MatchQuery struct {
	SetCode string
	Number  string
	Name    string
	Promo   bool
}

// Matcher resolves a query to exactly one catalog card.
type Matcher struct {
	cards CardSource
}

func NewMatcher(cards CardSource) *Matcher {
	return &Matcher{cards: cards}
}

// Match tries, in order: number then name within the set, name alone within
// the set, and both again on the set code with its promo marker stripped
// (forcing promo). It returns *CardNotFoundError when nothing matches and
// *AmbiguousCardError when the catalog holds a tie.
func (m *Matcher) Match(ctx context.Context, q MatchQuery) (*models.Card, error) {
	code := strings.ToLower(strings.TrimSpace(q.SetCode))

	card, err := m.matchInSet(ctx, code, q.Number, q.Name, q.Promo)
	if card != nil || err != nil {
		return card, err
	}

	if base, ok := strings.CutPrefix(code, promoMarker); ok && base != "" {
		card, err = m.matchInSet(ctx, base, q.Number, q.Name, true)
		if card != nil || err != nil {
			return card, err
		}
	}

	return nil, &CardNotFoundError{SetCode: code, Number: q.Number, Name: q.Name}
}

func (m *Matcher) matchInSet(ctx context.Context, code, number, name string, promo bool) (*models.Card, error) {
	cards, err := m.cards.FindCardsInSet(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("load cards for set %q: %w", code, err)
	}
	if len(cards) == 0 {
		return nil, nil
	}

	if number != "" {
		candidates := filterCards(cards, func(c models.Card) bool {
			return strings.EqualFold(c.CardNumber, number) && (name == "" || c.Name == name)
		})
		card, err := pickOne(candidates, promo, code, number, name)
		if card != nil || err != nil {
			return card, err
		}
	}

	if name != "" {
		candidates := filterCards(cards, func(c models.Card) bool {
			return c.Name == name && c.IsPromo == promo
		})
		switch len(candidates) {
		case 0:
		case 1:
			return &candidates[0], nil
		default:
			return nil, ambiguous(candidates, code, "", name)
		}
	}

	return nil, nil
}

// pickOne returns the single candidate, using the promo flag as the last
// tie-break. A tie that survives it is an error.
func pickOne(candidates []models.Card, promo bool, code, number, name string) (*models.Card, error) {
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return &candidates[0], nil
	}

	byPromo := filterCards(candidates, func(c models.Card) bool { return c.IsPromo == promo })
	if len(byPromo) == 1 {
		return &byPromo[0], nil
	}
	if len(byPromo) == 0 {
		byPromo = candidates
	}
	return nil, ambiguous(byPromo, code, number, name)
}

func ambiguous(candidates []models.Card, code, number, name string) error {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	return &AmbiguousCardError{SetCode: code, Number: number, Name: name, Candidates: ids}
}

func filterCards(cards []models.Card, keep func(models.Card) bool) []models.Card {
	var out []models.Card
	for _, c := range cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
