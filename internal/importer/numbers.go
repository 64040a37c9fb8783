package importer

import (
	"strconv"
	"strings"
)

// RemapNumber corrects a legacy collector number. setName is the export's
// display name for the set, which is what the offset tables are keyed by.
// It never fails: anything it cannot interpret is returned unchanged.
func (r *Rules) RemapNumber(number, setName, cardName, printingNote string) string {
	number = strings.TrimSpace(number)

	for _, o := range r.NumberOverrides {
		if o.CardName == cardName && o.Number == number {
			return o.Replacement
		}
	}

	if ranges, ok := r.OffsetTables[setName]; ok {
		n, err := strconv.Atoi(number)
		if err != nil {
			return number
		}
		for _, rg := range ranges {
			if rg.contains(n) {
				return strconv.Itoa(n + rg.Offset)
			}
		}
		return number
	}

	if isVariantMarker(printingNote) && number != "" {
		return number + printingNote
	}

	return number
}

// isVariantMarker reports whether a printing note is a single lowercase
// letter such as "a" or "b".
func isVariantMarker(note string) bool {
	return len(note) == 1 && note[0] >= 'a' && note[0] <= 'z'
}
