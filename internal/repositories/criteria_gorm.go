package repositories

import (
	"strings"

	"giftcerts/internal/query"

	"gorm.io/gorm"
)

// applyPredicates translates a predicate set into WHERE clauses. Both the
// page query and the count query go through this single function, so the two
// can never diverge in filter logic.
func applyPredicates(db *gorm.DB, predicates []query.Predicate) *gorm.DB {
	for _, p := range predicates {
		switch p.Kind {
		case query.KindNotDeleted:
			db = db.Where("is_deleted = ?", false)
		case query.KindHasTag:
			// One subquery per tag value; ANDed subqueries require the
			// certificate to carry all named tags.
			db = db.Where(
				"id IN (SELECT ct.certificate_id FROM certificate_tags ct JOIN tags t ON t.id = ct.tag_id WHERE LOWER(t.name) = ?)",
				strings.ToLower(p.Value),
			)
		case query.KindSearch:
			like := "%" + strings.ToLower(p.Value) + "%"
			db = db.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
		}
	}
	return db
}

// applyOrdering adds the sort keys in the order given, falling back to id
// order so pagination stays stable.
func applyOrdering(db *gorm.DB, sort []query.SortKey) *gorm.DB {
	for _, key := range sort {
		direction := " ASC"
		if key.Desc {
			direction = " DESC"
		}
		db = db.Order(key.Field + direction)
	}
	return db.Order("id ASC")
}

// applyWindow adds the offset/limit window (0-based page × limit).
func applyWindow(db *gorm.DB, w query.Window) *gorm.DB {
	return db.Offset(w.Offset()).Limit(w.Limit)
}
