// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"math"
	"strconv"
)

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// PageBounds resolves raw page/limit query values. Missing or non-numeric
// values fall back to 1 and def; page < 1 becomes 1, limit < 1 becomes def
// and limit is capped at max when max > 0. page is capped so that the offset
// (page-1)*limit fits in an int.
func PageBounds(rawPage, rawLimit string, def, max int) (page, limit int) {
	page = AtoiDefault(rawPage, 1)
	if page < 1 {
		page = 1
	}
	limit = AtoiDefault(rawLimit, def)
	if limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	if limit > 0 && page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
