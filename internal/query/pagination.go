package query

import (
	"strconv"

	"giftcerts/internal/apperr"
)

// Pagination parameter names and bounds.
const (
	ParamPage = "page"
	ParamSize = "size"

	DefaultPage = 0
	DefaultSize = 10
	MinSize     = 1
	MaxSize     = 100
)

// Window is the resolved pagination request: a 0-based page and a row limit.
type Window struct {
	Page  int
	Limit int
}

// Offset converts the window into a row offset (page × limit).
func (w Window) Offset() int {
	return w.Page * w.Limit
}

// ResolveWindow parses page/size out of normalized params, enforcing numeric
// and range constraints. Absent values fall back to the defaults and are
// written back into the map so downstream consumers see the resolved values.
func ResolveWindow(params Params) (Window, error) {
	w := Window{Page: DefaultPage, Limit: DefaultSize}

	if values, ok := params[ParamPage]; ok && len(values) > 0 {
		page, err := strconv.Atoi(values[0])
		if err != nil {
			return Window{}, apperr.NewValidation(apperr.CodeInvalidOffsetFormat, values[0])
		}
		if page < 0 {
			return Window{}, apperr.NewValidation(apperr.CodeNegativeOffset, values[0])
		}
		w.Page = page
	} else {
		params[ParamPage] = []string{strconv.Itoa(DefaultPage)}
	}

	if values, ok := params[ParamSize]; ok && len(values) > 0 {
		size, err := strconv.Atoi(values[0])
		if err != nil {
			return Window{}, apperr.NewValidation(apperr.CodeInvalidLimitFormat, values[0])
		}
		if size < MinSize {
			return Window{}, apperr.NewValidation(apperr.CodeNegativeLimit, values[0])
		}
		if size > MaxSize {
			return Window{}, apperr.NewValidation(apperr.CodeTooLargeLimit, values[0])
		}
		w.Limit = size
	} else {
		params[ParamSize] = []string{strconv.Itoa(DefaultSize)}
	}

	return w, nil
}

// TotalPages computes how many pages a filtered set of total rows spans at
// the given limit.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
