package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is one offending field, as returned to clients.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationError lists the field errors found anywhere in err's chain.
func FormatValidationError(err error) []Error {
	var out []Error
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			out = append(out, Error{
				Field:   fieldPath(e.Namespace()),
				Message: e.Error(),
			})
		}
	}
	return out
}

// fieldPath drops the root struct name: "joinParams.Settings.VoteMode" -> "Settings.VoteMode".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
