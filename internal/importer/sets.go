package importer

import (
	"strings"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// SetIndex answers set lookups during resolution.
type SetIndex interface {
	FindSetByCode(code string) (models.Set, bool)
	FindSetByName(name string) (string, bool)
}

// SetSnapshot is an immutable code/name index of the catalog's sets, built
// once per run so resolution stays deterministic even if the catalog changes
// underneath.
type SetSnapshot struct {
	byCode map[string]models.Set
	byName map[string]string
}

// NewSetSnapshot indexes sets. Codes are matched case-insensitively, names
// exactly. If two sets share a name the first one wins.
func NewSetSnapshot(sets []models.Set) *SetSnapshot {
	s := &SetSnapshot{
		byCode: make(map[string]models.Set, len(sets)),
		byName: make(map[string]string, len(sets)),
	}
	for _, set := range sets {
		code := strings.ToLower(set.Code)
		s.byCode[code] = set
		if _, exists := s.byName[set.Name]; !exists {
			s.byName[set.Name] = code
		}
	}
	return s
}

func (s *SetSnapshot) FindSetByCode(code string) (models.Set, bool) {
	set, ok := s.byCode[strings.ToLower(code)]
	return set, ok
}

func (s *SetSnapshot) FindSetByName(name string) (string, bool) {
	code, ok := s.byName[name]
	return code, ok
}

// Len returns the number of indexed sets.
func (s *SetSnapshot) Len() int {
	return len(s.byCode)
}

// ResolveSet turns a classification into a set code guess. The guess is not
// verified here; the matcher fails if it is wrong.
//
// Order: scanning-set routes, per-card overrides, code aliases, display-name
// lookup, then the raw edition code.
func (r *Rules) ResolveSet(c Classification, cardName string, sets SetIndex) string {
	code := c.SetCodeHint

	if target, ok := r.ScanningSets[code]; ok {
		return target
	}

	for _, rule := range r.CardSetOverrides {
		if rule.Code == code && rule.CardName == cardName {
			if _, ok := sets.FindSetByCode(rule.SetCode); ok {
				return rule.SetCode
			}
		}
	}

	if alias, ok := r.Aliases[code]; ok {
		if _, exists := sets.FindSetByCode(alias); exists {
			return alias
		}
	}

	if c.SetNameHint != "" {
		if found, ok := sets.FindSetByName(c.SetNameHint); ok {
			return found
		}
	}

	return code
}
