package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/abook/internal/shared"
)

// Rule is a named validation pattern for one kind of field.
//
// A Rule with a nil pattern accepts any input unchanged.
type Rule struct {
	Name    string
	Message string
	pattern *regexp.Regexp
}

var (
	RuleName = Rule{
		Name:    "name",
		Message: "use an uppercase letter followed by at least two letters",
		pattern: regexp.MustCompile(`^[A-Z][A-Za-z]{2,}$`),
	}
	RulePlace = Rule{
		Name:    "place",
		Message: "use only letters and spaces",
		pattern: regexp.MustCompile(`^[A-Za-z\s]+$`),
	}
	RuleZip = Rule{
		Name:    "zip",
		Message: "enter a number of at least 6 digits",
		pattern: regexp.MustCompile(`^\d{6,}$`),
	}
	RulePhone = Rule{
		Name:    "phone",
		Message: "enter a 2 digit code, a space and a 10 digit number (Eg : 87 4567890654)",
		pattern: regexp.MustCompile(`^\d{2} \d{10}$`),
	}
	RuleEmail = Rule{
		Name:    "email",
		Message: "enter an address like name@example.com",
		pattern: regexp.MustCompile(`^[a-zA-Z0-9]+(?:[._%+-][a-zA-Z0-9]+)*@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}(?:\.[a-zA-Z]{2,})?$`),
	}
	RuleAddress = Rule{Name: "address"}
)

// FieldRule returns the rule applied to field f.
func FieldRule(f Field) Rule {
	switch f {
	case FieldFirstName, FieldLastName:
		return RuleName
	case FieldCity, FieldState:
		return RulePlace
	case FieldZipCode:
		return RuleZip
	case FieldPhone:
		return RulePhone
	case FieldEmail:
		return RuleEmail
	}
	return RuleAddress
}

// ValidationError reports a candidate value rejected by a [Rule].
type ValidationError struct {
	Field   Field
	Rule    string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %q: %s", strings.ToLower(e.Field.Label()), e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Rule, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error { return shared.ErrValidation }

// Validate checks one candidate against rule and returns it unchanged when it matches.
//
// The whole value must match; callers trim user input first. The address rule accepts anything.
func Validate(raw string, rule Rule) (string, error) {
	if rule.pattern == nil {
		return raw, nil
	}
	if !rule.pattern.MatchString(raw) {
		return "", &ValidationError{Rule: rule.Name, Value: raw, Message: rule.Message}
	}
	return raw, nil
}

// ValidateField is [Validate] with the rule looked up from f and the field recorded on failure.
func ValidateField(f Field, raw string) (string, error) {
	v, err := Validate(raw, FieldRule(f))
	if ve, ok := err.(*ValidationError); ok {
		ve.Field = f
	}
	return v, err
}
