package jsonrpc

import (
	"encoding/json"

	"github.com/rubsen49-sketch/MovieMatch/internal/validation"
)

// ShouldBindParams decodes params into v and runs its `validate` tags.
// Failures come back as an invalid params *Error listing offending fields.
func ShouldBindParams(params *json.RawMessage, v any) error {
	if params == nil {
		return ErrInvalidParams("params required")
	}
	if err := json.Unmarshal(*params, v); err != nil {
		return ErrInvalidParams("invalid params")
	}
	if err := validation.Struct(v); err != nil {
		return ErrInvalidParams("invalid params").WithData(validation.FormatValidationError(err))
	}
	return nil
}
