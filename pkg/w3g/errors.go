package w3g

import (
	"fmt"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// ParseError is the base error shape for every decode failure: a
// message plus the byte offset into the decompressed stream where the
// problem was detected. Kept from the original parser's error family and
// generalized with the typed constructors below.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset 0x%X", e.Message, e.Offset)
}

// InvalidHeaderError indicates an invalid or unrecognized file/replay header.
type InvalidHeaderError struct{ ParseError }

// UnknownTagError indicates a mandatory tag (record, block or action) had
// no known decoder; unknown tags are never skipped.
type UnknownTagError struct {
	ParseError
	Tag uint8
}

// InvalidEnumError indicates a bit-packed or enumerated field held a
// value outside its exhaustively mapped range.
type InvalidEnumError struct {
	ParseError
	Field string
}

// MalformedStringError indicates invalid UTF-8 in a text field. An
// unterminated NUL/zero-terminated run is reported as TruncatedDataError.
type MalformedStringError struct{ ParseError }

// TruncatedDataError indicates the stream ended before a fixed- or
// variable-length field could be fully read.
type TruncatedDataError struct{ ParseError }

// ActionSizeMismatchError indicates a Command's actions did not consume
// exactly NumBytes (the §8 "action tag coverage" property).
type ActionSizeMismatchError struct {
	ParseError
	Want, Got int
}

func wrap(e error) error { return errs.Decode(e, "replay decode failed") }

func newInvalidHeaderError(offset int, format string, args ...interface{}) error {
	return wrap(&InvalidHeaderError{ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}})
}

func newUnknownTagError(offset int, tag uint8, context string) error {
	return wrap(&UnknownTagError{
		ParseError: ParseError{Message: fmt.Sprintf("unknown %s tag", context), Offset: offset},
		Tag:        tag,
	})
}

func newInvalidEnumError(offset int, field string, value interface{}) error {
	return wrap(&InvalidEnumError{
		ParseError: ParseError{Message: fmt.Sprintf("invalid value %v", value), Offset: offset},
		Field:      field,
	})
}

func newMalformedStringError(offset int, format string, args ...interface{}) error {
	return wrap(&MalformedStringError{ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}})
}

func newTruncatedDataError(offset int, format string, args ...interface{}) error {
	return wrap(&TruncatedDataError{ParseError{Message: fmt.Sprintf(format, args...), Offset: offset}})
}

func newActionSizeMismatchError(offset, want, got int) error {
	return wrap(&ActionSizeMismatchError{
		ParseError: ParseError{Message: fmt.Sprintf("command declared %d bytes, actions consumed %d", want, got), Offset: offset},
		Want:       want,
		Got:        got,
	})
}
