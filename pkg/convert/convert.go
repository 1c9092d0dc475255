// Copyright (c) 2026 Zinery. All rights reserved.

/*
Package convert provides fault-tolerant string conversions for handler
contexts, wrapping [strconv] so malformed query or path values collapse
to a zero or default value instead of an error.

Do not use this package where malformed input must be distinguished from
a genuine zero; use [strconv] directly there.
*/
package convert

import (
	"strconv"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning the provided default if
// parsing fails or the string is empty.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
