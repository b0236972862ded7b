package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns and limits
var (
	// Item key pattern - lowercase slug such as desk_red
	ItemKeyPattern = `^[a-z0-9][a-z0-9_\-]*$`

	ItemKeyMaxLength = 64

	// Name max length, counted in characters
	NameMaxLength = 100

	// bcrypt only looks at the first 72 bytes
	PasswordMaxBytes = 72
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	ItemKey *regexp.Regexp
}{
	ItemKey: regexp.MustCompile(ItemKeyPattern),
}

// StringValidation checks a string field. Lengths count runes.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// NumericValidation checks an integer against optional bounds
type NumericValidation struct {
	Value int
	min   *int
	max   *int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets an inclusive lower bound
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.min = &min
	return v
}

// WithMax sets an inclusive upper bound
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.max = &max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.min != nil && v.Value < *v.min {
		return false
	}
	if v.max != nil && v.Value > *v.max {
		return false
	}
	return true
}

// ValidItemKey reports whether key is a usable catalog key
func ValidItemKey(key string) bool {
	return NewStringValidation(key).
		WithMaxLength(ItemKeyMaxLength).
		WithPattern(CompiledPatterns.ItemKey).
		Validate()
}

// ValidName reports whether name is a usable student or item name
func ValidName(name string) bool {
	return NewStringValidation(name).WithMaxLength(NameMaxLength).Validate()
}

// ValidPassword reports whether password is non-empty and within bcrypt's limit
func ValidPassword(password string) bool {
	return password != "" && len(password) <= PasswordMaxBytes
}
