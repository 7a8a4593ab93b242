package playerservice

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the column width of first_name and last_name.
const MaxNameLength = 50

// normalizeNames trims both names and checks them against the column rules.
func normalizeNames(firstName, lastName string) (string, string, *FieldError) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)

	if failure := validateName(FieldFirstName, first); failure != nil {
		return "", "", failure
	}
	if failure := validateName(FieldLastName, last); failure != nil {
		return "", "", failure
	}
	return first, last, nil
}

func validateName(field, value string) *FieldError {
	if value == "" {
		return invalidInput(field, fmt.Sprintf("%s must not be blank", field))
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return invalidInput(field, fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength))
	}
	return nil
}
