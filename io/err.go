package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrInputExhausted = errors.New(f("input exhausted"))
)

// ErrParseInput reports console input that is not a signed decimal integer.
type ErrParseInput string

func (err ErrParseInput) Error() string {
	return f("could not parse '%v' as an integer", string(err))
}
