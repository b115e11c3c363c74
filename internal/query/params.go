// Package query turns raw listing parameters into the criteria object the
// storage layer consumes: a predicate set, an ordering clause and a bounded
// pagination window. One engine serves every listable entity kind; each kind
// plugs in its own allow-list, filter constructors and sort field table.
package query

import (
	"strings"

	"giftcerts/internal/apperr"
)

// Params is the raw key -> values multimap of a listing request.
type Params map[string][]string

// Normalize lower-cases all keys and values and verifies the key set is a
// subset of the allow-list. The input map is left untouched.
func Normalize(raw Params, allowed []string) (Params, error) {
	normalized := make(Params, len(raw))
	for key, values := range raw {
		lowerKey := strings.ToLower(key)
		if !contains(allowed, lowerKey) {
			return nil, apperr.NewValidation(apperr.CodeInvalidReadParameter, key)
		}
		lowerValues := make([]string, len(values))
		for i, v := range values {
			lowerValues[i] = strings.ToLower(v)
		}
		normalized[lowerKey] = lowerValues
	}
	return normalized, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
