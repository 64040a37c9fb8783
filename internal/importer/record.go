package importer

import (
	"time"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// Export column names.
const (
	ColumnCount        = "Count"
	ColumnEdition      = "Edition"
	ColumnEditionCode  = "Edition Code"
	ColumnCardNumber   = "Card Number"
	ColumnName         = "Name"
	ColumnCondition    = "Condition"
	ColumnLanguage     = "Language"
	ColumnFoil         = "Foil"
	ColumnPromo        = "Promo"
	ColumnArtistProof  = "Artist Proof"
	ColumnPrintingNote = "Printing Note"
	ColumnLastUpdated  = "Last Updated"
	ColumnError        = "Error"
)

// Columns lists the export columns the importer reads.
var Columns = []string{
	ColumnCount,
	ColumnEdition,
	ColumnEditionCode,
	ColumnCardNumber,
	ColumnName,
	ColumnCondition,
	ColumnLanguage,
	ColumnFoil,
	ColumnPromo,
	ColumnArtistProof,
	ColumnPrintingNote,
	ColumnLastUpdated,
}

// Record is one raw export row. Missing columns are empty strings.
// Raw holds the original fields in source column order so a reject can be
// written back unchanged.
type Record struct {
	Line         int
	Count        string
	Edition      string
	EditionCode  string
	CardNumber   string
	Name         string
	Condition    string
	Language     string
	Foil         string
	Promo        string
	ArtistProof  string
	PrintingNote string
	LastUpdated  string
	Raw          []string
}

// Possession is a fully resolved row, ready for the ledger.
type Possession struct {
	Card                models.Card
	Printing            models.PrintingType
	Language            models.CardLanguage
	Condition           models.Condition
	Quantity            int
	DateAdded           time.Time
	StampPrereleaseDate bool
	StampPromoSymbol    bool
}

// Foil reports whether the possession is any foil finish.
func (p Possession) Foil() bool {
	return p.Printing.IsFoilVariant()
}

// Reject is a row that was not committed, with the reason.
type Reject struct {
	Record Record
	Error  string
}

// Summary holds the aggregate counters of one run.
type Summary struct {
	Imported      int `json:"imported"`
	SkippedByDate int `json:"skipped_by_date"`
	Rejected      int `json:"rejected"`
}

// Total is the number of rows read.
func (s Summary) Total() int {
	return s.Imported + s.SkippedByDate + s.Rejected
}
