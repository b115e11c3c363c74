package query

import "giftcerts/internal/apperr"

// Filter parameter vocabulary.
const (
	ParamSearch = "search"
	ParamSort   = "sort"
	ParamTag    = "tag"
)

// CertificateTable configures certificate listings: tag and free-text
// filters, soft-delete exclusion, and the {name, price, createDate} sort
// whitelist.
func CertificateTable() Table {
	return Table{
		AllowedParams: []string{ParamSearch, ParamSort, ParamTag, ParamPage, ParamSize},
		Always:        []Predicate{{Kind: KindNotDeleted}},
		Filters: []Filter{
			{
				Key: ParamTag,
				// Each tag value is its own predicate; a certificate must
				// carry all named tags.
				Build: func(values []string) []Predicate {
					preds := make([]Predicate, 0, len(values))
					for _, v := range values {
						preds = append(preds, Predicate{Kind: KindHasTag, Value: v})
					}
					return preds
				},
			},
			{
				Key: ParamSearch,
				Build: func(values []string) []Predicate {
					// Only the first supplied value counts.
					return []Predicate{{Kind: KindSearch, Value: values[0]}}
				},
			},
		},
		SortFields: map[string]string{
			"name":       "name",
			"price":      "price",
			"createdate": "create_date",
		},
		SortErrCode: apperr.CodeInvalidCertificateSortParam,
	}
}

// TagTable configures tag listings: page/size only, soft-deleted excluded.
func TagTable() Table {
	return Table{
		AllowedParams: []string{ParamPage, ParamSize},
		Always:        []Predicate{{Kind: KindNotDeleted}},
	}
}

// UserTable configures user listings: page/size only.
func UserTable() Table {
	return Table{
		AllowedParams: []string{ParamPage, ParamSize},
	}
}

// OrderTable configures order listings: page/size only.
func OrderTable() Table {
	return Table{
		AllowedParams: []string{ParamPage, ParamSize},
	}
}
