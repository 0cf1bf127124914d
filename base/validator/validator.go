package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// account ids follow the host ledger's rules: lowercase alphanumeric parts
// separated by single separators, 2 to 64 characters
var accountIdPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// IsValidAccountId reports whether the id is a well-formed ledger account id
func IsValidAccountId(id string) bool {
	if len(id) < 2 || len(id) > 64 {
		return false
	}
	return accountIdPattern.MatchString(id)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
