package validator

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// leadingInteger returns the signed run of base-10 digits at the start of
// code, after leading white space. Anything after the digits is ignored.
func leadingInteger(code string) (string, bool) {
	s := strings.TrimLeftFunc(code, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return "", false
	}

	return s[:end], true
}

// ValidateShortCode reports whether code is present and starts with
// a base-10 integer. "12abc" is valid, "abc" and "" are not.
func ValidateShortCode(code string) bool {
	if code == "" {
		return false
	}
	_, ok := leadingInteger(code)
	return ok
}

// ParseShortCode returns the leading integer of a code accepted by
// ValidateShortCode. Values outside the int range saturate, which keeps
// them out of range for any store.
func ParseShortCode(code string) int {
	digits, ok := leadingInteger(code)
	if !ok {
		return -1
	}

	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		if digits[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}

	return n
}
