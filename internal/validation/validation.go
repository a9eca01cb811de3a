// Package validation holds the field rules for users and tasks. Every check is
// a pure function: it returns the normalized value or a *Error naming the
// offending field, and never touches storage.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
)

// Error describes a single field that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

const passwordSymbols = "!@#$%?=*&"

// commonPasswordParts are rejected anywhere in a password, case-insensitively.
var commonPasswordParts = []string{
	"password", "123", "qwe", "abc", "iloveyou", "iluvu", "iloveu", "admin", "098", "987", "000", "111",
}

var validate = validator.New()

// Name trims the value and checks its minimum length.
func Name(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", newError("name", "Name is required!")
	}
	if len([]rune(name)) < constants.MinNameLength {
		return "", newError("name", fmt.Sprintf("Minimum length is %d", constants.MinNameLength))
	}
	return name, nil
}

// Email trims and lowercases the value and checks it is a syntactically valid address.
func Email(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", newError("email", "Email is required!")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", newError("email", "Email is invalid!")
	}
	return email, nil
}

// Password checks the plaintext against the denylist and the complexity rules.
// The denylist is checked first so a common password is always reported as such.
func Password(value string) error {
	if value == "" {
		return newError("password", "Password is required!")
	}

	lower := strings.ToLower(value)
	for _, part := range commonPasswordParts {
		if strings.Contains(lower, part) {
			return newError("password", "Please don't use common passwords like qwe, 123, your name, etc inside the password!")
		}
	}

	length := len([]rune(value))
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if length < constants.MinPasswordLength || length > constants.MaxPasswordLength ||
		!hasDigit || !hasLower || !hasUpper || !hasSymbol {
		return newError("password", fmt.Sprintf(
			"Password should be of min %d char & max %d char with atleast 1 digit, 1 lower and upper cases and 1 symbol (%s)",
			constants.MinPasswordLength, constants.MaxPasswordLength, passwordSymbols,
		))
	}
	return nil
}

// DecodeAge reads an age given either as a JSON number or as a numeric string.
// Fractional values are rejected.
func DecodeAge(raw json.RawMessage) (int, error) {
	if trimmed := strings.TrimSpace(string(raw)); trimmed == "" || trimmed == "null" {
		return 0, newError("age", "Age must be a number!")
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return wholeAge(number)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return wholeAge(number)
		}
	}
	return 0, newError("age", "Age must be a number!")
}

func wholeAge(number float64) (int, error) {
	if number != math.Trunc(number) || math.IsInf(number, 0) || number > math.MaxInt32 || number < math.MinInt32 {
		return 0, newError("age", "Age must be a number!")
	}
	return int(number), nil
}

// Age checks the minimum age.
func Age(value int) error {
	if value < constants.MinAge {
		return newError("age", fmt.Sprintf("Age must be more than %d!", constants.MinAge))
	}
	return nil
}

// Description trims a task description and checks its length bounds.
func Description(value string) (string, error) {
	description := strings.TrimSpace(value)
	length := len([]rune(description))
	switch {
	case description == "":
		return "", newError("description", "Description is required!")
	case length < constants.MinDescriptionLength:
		return "", newError("description", fmt.Sprintf("Minimum length should be at least %d char!", constants.MinDescriptionLength))
	case length > constants.MaxDescriptionLength:
		return "", newError("description", fmt.Sprintf("Maximum allowed length is %d char only!", constants.MaxDescriptionLength))
	}
	return description, nil
}
