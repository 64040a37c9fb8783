package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/codyseavey/tcg-tracker/collection/internal/logging"
	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

// Catalog is the read-only card catalog.
type Catalog interface {
	CardSource
	AllSets(ctx context.Context) ([]models.Set, error)
}

// Ledger receives resolved possessions.
type Ledger interface {
	AppendPossession(ctx context.Context, p Possession) error
	ClearAll(ctx context.Context) error
}

// RowSource yields export rows; it returns io.EOF when exhausted.
type RowSource interface {
	Next() (Record, error)
}

// RejectWriter receives rows that were rejected or skipped.
type RejectWriter interface {
	WriteReject(r Reject) error
}

// Options control one run.
type Options struct {
	// ClearBeforeImport deletes every possession before the first row.
	ClearBeforeImport bool

	// Since and Until bound Last Updated; zero values are open bounds.
	Since time.Time
	Until time.Time

	// Now is the fallback date for rows without Last Updated.
	Now func() time.Time
}

// Pipeline drives rows through classification, set resolution, number
// remapping and matching. It is strictly sequential.
type Pipeline struct {
	rules   *Rules
	catalog Catalog
	matcher *Matcher
	opts    Options
	log     *zap.Logger
}

func NewPipeline(rules *Rules, catalog Catalog, opts Options, log *zap.Logger) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		rules:   rules,
		catalog: catalog,
		matcher: NewMatcher(catalog),
		opts:    opts,
		log:     logging.OrNop(log),
	}
}

// rowState is threaded through the fold. It carries the set of the last
// committed row for shorthand rows that omit the edition.
type rowState struct {
	previousSetCode string
	previousSetName string
}

type rowOutcome int

const (
	outcomeCommitted rowOutcome = iota
	outcomeSkipped
	outcomeRejected
)

// Run processes every row of src. Row failures become rejects and never stop
// the batch; an error is returned only when the source, the ledger or the
// reject writer fails. On error the returned Summary counts the rows handled
// before the failure.
func (p *Pipeline) Run(ctx context.Context, src RowSource, ledger Ledger, rejects RejectWriter) (Summary, error) {
	var summary Summary

	sets, err := p.catalog.AllSets(ctx)
	if err != nil {
		return summary, fmt.Errorf("load catalog sets: %w", err)
	}
	snapshot := NewSetSnapshot(sets)
	p.log.Debug("catalog snapshot loaded", zap.Int("sets", snapshot.Len()))

	if p.opts.ClearBeforeImport {
		if err := ledger.ClearAll(ctx); err != nil {
			return summary, fmt.Errorf("clear possessions: %w", err)
		}
		p.log.Info("cleared existing possessions before import")
	}

	runStart := p.opts.Now()
	state := rowState{}
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("read row: %w", err)
		}

		var possession *Possession
		var outcome rowOutcome
		var reason string
		possession, outcome, reason, state = p.step(ctx, snapshot, state, rec, runStart)

		switch outcome {
		case outcomeCommitted:
			if err := ledger.AppendPossession(ctx, *possession); err != nil {
				return summary, fmt.Errorf("append possession (line %d): %w", rec.Line, err)
			}
			summary.Imported++
		case outcomeSkipped:
			if err := rejects.WriteReject(Reject{Record: rec, Error: reason}); err != nil {
				return summary, fmt.Errorf("write reject: %w", err)
			}
			summary.SkippedByDate++
		case outcomeRejected:
			if err := rejects.WriteReject(Reject{Record: rec, Error: reason}); err != nil {
				return summary, fmt.Errorf("write reject: %w", err)
			}
			summary.Rejected++
			p.log.Debug("row rejected", zap.Int("line", rec.Line), zap.String("name", rec.Name), zap.String("error", reason))
		}
	}

	p.log.Info("import finished",
		zap.Int("imported", summary.Imported),
		zap.Int("skipped_by_date", summary.SkippedByDate),
		zap.Int("rejected", summary.Rejected))
	return summary, nil
}

// step processes one row and returns the next state. It only reads the
// catalog; committing the outcome is left to Run.
func (p *Pipeline) step(ctx context.Context, sets SetIndex, state rowState, rec Record, now time.Time) (*Possession, rowOutcome, string, rowState) {
	quantity, err := ParseQuantity(rec.Count)
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}
	lastUpdated, err := ParseLastUpdated(rec.LastUpdated, now)
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}
	if reason, skip := p.outsideWindow(lastUpdated); skip {
		return nil, outcomeSkipped, reason, state
	}

	condition, err := conditionOrDefault(rec.Condition)
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}
	language, err := languageOrDefault(rec.Language)
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}

	class, setCode, setName, err := p.resolveEdition(rec, sets, state)
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}

	number := ""
	if class.IsSetNumberReliable {
		number = p.rules.RemapNumber(rec.CardNumber, setName, rec.Name, strings.TrimSpace(rec.PrintingNote))
	}
	name := rec.Name
	if class.IsSubstituteCard {
		name = ""
	}

	card, err := p.matcher.Match(ctx, MatchQuery{SetCode: setCode, Number: number, Name: name, Promo: class.IsPromo})
	if err != nil {
		return nil, outcomeRejected, err.Error(), state
	}

	printing := ParsePrinting(rec.Foil)
	if class.IsPrereleaseStamp && !printing.IsFoilVariant() {
		printing = models.PrintingFoil
	}

	possession := &Possession{
		Card:                *card,
		Printing:            printing,
		Language:            language,
		Condition:           condition,
		Quantity:            quantity,
		DateAdded:           lastUpdated,
		StampPrereleaseDate: class.IsPrereleaseStamp,
		StampPromoSymbol:    class.HasPromoStamp,
	}
	next := rowState{previousSetCode: card.SetCode, previousSetName: setName}
	return possession, outcomeCommitted, "", next
}

// resolveEdition classifies the row and resolves its set. Rows with neither an
// edition code nor an edition name reuse the previous committed row's set.
func (p *Pipeline) resolveEdition(rec Record, sets SetIndex, state rowState) (Classification, string, string, error) {
	class := p.rules.Classify(EditionInput{
		Code:         rec.EditionCode,
		Edition:      rec.Edition,
		PrintingNote: rec.PrintingNote,
		CardName:     rec.Name,
		Promo:        ParseFlag(rec.Promo),
		ArtistProof:  ParseFlag(rec.ArtistProof),
	})

	if strings.TrimSpace(rec.EditionCode) == "" && strings.TrimSpace(rec.Edition) == "" {
		if state.previousSetCode == "" {
			return class, "", "", ErrNoEdition
		}
		return class, state.previousSetCode, state.previousSetName, nil
	}

	return class, p.rules.ResolveSet(class, rec.Name, sets), class.SetNameHint, nil
}

func (p *Pipeline) outsideWindow(t time.Time) (string, bool) {
	if !p.opts.Since.IsZero() && t.Before(p.opts.Since) {
		return fmt.Sprintf("skipped: last updated %s is before %s",
			t.Format(time.RFC3339), p.opts.Since.Format(time.RFC3339)), true
	}
	if !p.opts.Until.IsZero() && t.After(p.opts.Until) {
		return fmt.Sprintf("skipped: last updated %s is after %s",
			t.Format(time.RFC3339), p.opts.Until.Format(time.RFC3339)), true
	}
	return "", false
}

func conditionOrDefault(raw string) (models.Condition, error) {
	if strings.TrimSpace(raw) == "" {
		return models.ConditionNearMint, nil
	}
	if c := ParseCondition(raw); c != models.ConditionUnknown {
		return c, nil
	}
	return models.ConditionUnknown, &ParseError{Field: ColumnCondition, Value: raw, Err: ErrUnknownCondition}
}

func languageOrDefault(raw string) (models.CardLanguage, error) {
	if strings.TrimSpace(raw) == "" {
		return models.LanguageEnglish, nil
	}
	if l := ParseLanguage(raw); l != models.LanguageUnknown {
		return l, nil
	}
	return models.LanguageUnknown, &ParseError{Field: ColumnLanguage, Value: raw, Err: ErrUnknownLanguage}
}
