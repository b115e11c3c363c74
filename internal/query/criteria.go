package query

import (
	"strings"

	"giftcerts/internal/apperr"
)

// PredicateKind names a filter condition the storage layer knows how to
// translate. Predicates stay storage-agnostic so the same criteria produce
// identical results against any repository implementation.
type PredicateKind int

const (
	// KindNotDeleted excludes soft-deleted rows.
	KindNotDeleted PredicateKind = iota
	// KindHasTag requires the certificate to carry a tag with the given name
	// (case-insensitive, joined through the association).
	KindHasTag
	// KindSearch matches the value as a case-insensitive substring of the
	// name or the description.
	KindSearch
)

// Predicate is one filter condition. A criteria's predicates are ANDed.
type Predicate struct {
	Kind  PredicateKind
	Value string
}

// SortKey orders results by one field; later keys break ties of earlier ones.
type SortKey struct {
	Field string
	Desc  bool
}

// Criteria is the full shape of a listing request. The predicate set is
// shared verbatim between the page query and its count query; only the
// ordering and the window differ.
type Criteria struct {
	Predicates []Predicate
	Sort       []SortKey
	Window     Window
}

// Filter builds predicates from the values supplied under one parameter key.
type Filter struct {
	Key   string
	Build func(values []string) []Predicate
}

// Table is the per-entity configuration of the listing engine.
type Table struct {
	// AllowedParams is the full parameter allow-list, including page/size.
	AllowedParams []string
	// Always holds predicates applied to every listing of the entity.
	Always []Predicate
	// Filters run in order; each contributes predicates for its key.
	Filters []Filter
	// SortFields maps normalized sort values to storage field names. A nil
	// map means the entity is not sortable and sort params are rejected by
	// the allow-list already.
	SortFields map[string]string
	// SortErrCode is raised for sort values outside SortFields.
	SortErrCode apperr.Code
}

// Engine builds criteria for one entity kind.
type Engine struct {
	table Table
}

// NewEngine creates a listing engine for the given entity table.
func NewEngine(table Table) *Engine {
	return &Engine{table: table}
}

// BuildListing runs a raw parameter multimap through normalization,
// pagination resolution, filter construction and sort parsing.
func (e *Engine) BuildListing(raw Params) (Criteria, error) {
	params, err := Normalize(raw, e.table.AllowedParams)
	if err != nil {
		return Criteria{}, err
	}

	window, err := ResolveWindow(params)
	if err != nil {
		return Criteria{}, err
	}

	c := Criteria{Window: window}
	c.Predicates = append(c.Predicates, e.table.Always...)
	for _, filter := range e.table.Filters {
		if values, ok := params[filter.Key]; ok && len(values) > 0 {
			c.Predicates = append(c.Predicates, filter.Build(values)...)
		}
	}

	c.Sort, err = e.parseSort(params["sort"])
	if err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// parseSort maps each sort value to a field, a trailing '-' meaning
// descending. Keys apply in the order given, each a tiebreak on the prior.
func (e *Engine) parseSort(values []string) ([]SortKey, error) {
	if len(values) == 0 {
		return nil, nil
	}
	keys := make([]SortKey, 0, len(values))
	for _, value := range values {
		desc := strings.HasSuffix(value, "-")
		name := strings.TrimSuffix(value, "-")
		field, ok := e.table.SortFields[name]
		if !ok {
			return nil, apperr.NewValidation(e.table.SortErrCode, value)
		}
		keys = append(keys, SortKey{Field: field, Desc: desc})
	}
	return keys, nil
}
