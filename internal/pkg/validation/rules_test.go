package validation

import "testing"

func TestIsValidUSN(t *testing.T) {
	tests := []struct {
		usn  string
		want bool
	}{
		{"1RV22CS001", true},
		{"4MC21EC123", true},
		{"1rv22cs001", false},
		{"RV22CS001", false},
		{"1RV22CS01", false},
		{"1RV22CS0011", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidUSN(tt.usn); got != tt.want {
			t.Errorf("IsValidUSN(%q) = %v, want %v", tt.usn, got, tt.want)
		}
	}
}

func TestIsValidTeacherID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"T101", true},
		{"CSE42", true},
		{"T", false},
		{"101", false},
		{"t101", false},
		{"TOOLONG1234567", false},
	}

	for _, tt := range tests {
		if got := IsValidTeacherID(tt.id); got != tt.want {
			t.Errorf("IsValidTeacherID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"asha.rao@college.edu", true},
		{"a+b@mail.co", true},
		{"no-at-sign", false},
		{"@college.edu", false},
		{"asha@", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name string
		v    *StringValidation
		want bool
	}{
		{"required empty fails", NewStringValidation(""), false},
		{"optional empty passes", NewStringValidation("").WithRequired(false), true},
		{"below min length fails", NewStringValidation("a").WithMinLength(2), false},
		{"above max length fails", NewStringValidation("abcdef").WithMaxLength(3), false},
		{"pattern mismatch fails", NewStringValidation("nope").WithPattern(CompiledPatterns.USN), false},
		{"pattern match passes", NewStringValidation("1RV22CS001").WithPattern(CompiledPatterns.USN), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
