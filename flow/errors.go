package flow

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInputUnreadable marks a flow file that could not be opened or read.
	ErrInputUnreadable = errors.New("flow file unreadable")
	// ErrMalformedJSON marks input that is not valid JSON. A document that
	// parses but has no recognizable flow structure is not an error; it
	// yields an empty Result instead.
	ErrMalformedJSON = errors.New("flow file is not valid JSON")
)

func wrapJSONError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v (offset %d)", ErrMalformedJSON, err, syntaxErr.Offset)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v (offset %d)", ErrMalformedJSON, err, typeErr.Offset)
	}
	return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
}
