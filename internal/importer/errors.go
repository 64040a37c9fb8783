package importer

import (
	"errors"
	"fmt"
)

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrAmbiguousCard    = errors.New("ambiguous card")
	ErrUnknownCondition = errors.New("unknown condition")
	ErrUnknownLanguage  = errors.New("unknown language")
	ErrNoEdition        = errors.New("row has no edition and no previous row to inherit one from")
)

// ParseError reports a malformed field value.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CardNotFoundError is returned when every matching strategy failed. It
// carries the attempted lookup so the row can be fixed by hand.
type CardNotFoundError struct {
	SetCode string
	Number  string
	Name    string
}

func (e *CardNotFoundError) Error() string {
	return fmt.Sprintf("card not found: set=%q number=%q name=%q", e.SetCode, e.Number, e.Name)
}

func (e *CardNotFoundError) Is(target error) bool {
	return target == ErrCardNotFound
}

// AmbiguousCardError means the catalog holds more than one printing that
// survives every tie-break. This is a catalog defect, never resolved by
// picking one.
type AmbiguousCardError struct {
	SetCode    string
	Number     string
	Name       string
	Candidates []string
}

func (e *AmbiguousCardError) Error() string {
	return fmt.Sprintf("ambiguous card: set=%q number=%q name=%q matches %d catalog cards %v",
		e.SetCode, e.Number, e.Name, len(e.Candidates), e.Candidates)
}

func (e *AmbiguousCardError) Is(target error) bool {
	return target == ErrAmbiguousCard
}
