package helpers

// NilIfEmpty converts a string to a pointer, mapping empty to nil.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
