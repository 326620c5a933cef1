package utils

import "fmt"

// Format renders a possibly-nil pointer, empty string for nil.
func Format[T any](ptr *T) string {
	if ptr == nil {
		return ""
	}
	return fmt.Sprintf("%v", *ptr)
}

// FormatBoolean picks the yes or no label.
func FormatBoolean(yesno bool, yes string, no string) string {
	if yesno {
		return yes
	}
	return no
}
