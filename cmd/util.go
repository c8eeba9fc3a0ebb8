package main

import (
	"strconv"
	"strings"
)

// miscellaneous utility functions

func nonemptyValues(val []string) []string {
	res := []string{}

	for _, s := range val {
		if strings.TrimSpace(s) != "" {
			res = append(res, s)
		}
	}

	return res
}

func timeoutWithMinimum(str string, min int) int {
	val, err := strconv.Atoi(str)

	// fallback for invalid or nonsensical values
	if err != nil || val < min {
		val = min
	}

	return val
}

func isValidSortOrder(s string) bool {
	switch s {
	case "asc":
	case "desc":
	default:
		return false
	}

	return true
}

func uniqueStrings(s []string) []string {
	var uniq []string

	seen := make(map[string]bool)

	for _, val := range s {
		key := strings.ToLower(val)

		if seen[key] == false {
			uniq = append(uniq, val)
			seen[key] = true
		}
	}

	return uniq
}
