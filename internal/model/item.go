package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Item is the domain model for a food entry.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// ErrInvalidCalories is returned when calorie text carries no leading number.
var ErrInvalidCalories = errors.New("calories: not a number")

// ParseCalories reads an integer from the start of text, the way a form field
// is read: surrounding blanks are ignored, an optional sign is honored and
// anything after the digits is dropped ("300kcal" is 300). A 0x or 0X prefix
// switches to hexadecimal ("0x10" is 16).
func ParseCalories(text string) (int, error) {
	s := strings.TrimSpace(text)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	base, isDigit := 10, isDecimal
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit, s = 16, isHex, s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCalories, text)
	}
	n, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidCalories, text, err)
	}
	return int(n), nil
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Total sums calories over items.
func Total(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Calories
	}
	return total
}
