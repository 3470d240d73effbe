package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var roomCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,16}$`)

func init() {
	MustRegister("roomcode", ValidateRoomCode)
	MustRegisterAlias("votemode", "oneof=majority unanimity")
	MustRegisterAlias("discoverymode", "oneof=trending classic")
	MustRegisterAlias("movieid", "gt=0")
	MustRegisterAlias("userid", "min=1,max=128")
	MustRegisterAlias("region", "len=2,alpha")
}

// ValidateRoomCode accepts 3-16 characters of letters, digits, '-' or '_',
// ignoring surrounding whitespace.
func ValidateRoomCode(fl validator.FieldLevel) bool {
	return roomCodeRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}
