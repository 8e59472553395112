package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// USN pattern - college code, year, branch, serial (e.g. 1RV22CS001)
	USNPattern = `^[0-9][A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{3}$`

	// Teacher id pattern - uppercase letter prefix followed by digits
	TeacherIDPattern = `^[A-Z]{1,3}[0-9]{1,6}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	USN       *regexp.Regexp
	TeacherID *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	USN:       regexp.MustCompile(USNPattern),
	TeacherID: regexp.MustCompile(TeacherIDPattern),
}

// IsValidEmail reports whether the email matches the configured pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidUSN reports whether the USN matches the enrollment number format.
func IsValidUSN(usn string) bool {
	return CompiledPatterns.USN.MatchString(usn)
}

// IsValidTeacherID reports whether the teacher id matches the staff id format.
func IsValidTeacherID(id string) bool {
	return CompiledPatterns.TeacherID.MatchString(id)
}

// String validation
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
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
