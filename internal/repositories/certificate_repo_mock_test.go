package repositories_test

import (
	"fmt"
	"testing"

	"giftcerts/internal/models"
	"giftcerts/internal/query"
	"giftcerts/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedRepo(t *testing.T, repo *repositories.MockCertificateRepository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := repo.Create(&models.Certificate{
			Name:        fmt.Sprintf("Certificate %02d", i),
			Description: "stub description",
			Price:       decimal.New(int64(i*100), -2),
			Duration:    30,
		})
		assert.NoError(t, err)
	}
}

func TestMockCertificateRepository_PagingMatchesCount(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	seedRepo(t, repo, 25)

	c := query.Criteria{
		Predicates: []query.Predicate{{Kind: query.KindNotDeleted}},
		Window:     query.Window{Page: 0, Limit: 10},
	}

	total, err := repo.Count(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, int64(3), query.TotalPages(total, c.Window.Limit))

	// Walking every page yields each row exactly once.
	seen := map[int64]bool{}
	for page := 0; page < 3; page++ {
		c.Window.Page = page
		rows, err := repo.FindPage(c)
		assert.NoError(t, err)
		if page < 2 {
			assert.Len(t, rows, 10)
		} else {
			assert.Len(t, rows, 5)
		}
		for _, row := range rows {
			assert.False(t, seen[row.ID])
			seen[row.ID] = true
		}
	}
	assert.Len(t, seen, 25)

	// A page past the end is empty, not an error.
	c.Window.Page = 3
	rows, err := repo.FindPage(c)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMockCertificateRepository_TagPredicatesAreConjunctive(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	both := &models.Certificate{
		Name:        "Spa and dinner",
		Description: "combo voucher",
		Price:       decimal.New(19900, -2),
		Duration:    30,
		Tags:        []models.Tag{{ID: 1, Name: "wellness"}, {ID: 2, Name: "food"}},
	}
	onlyFood := &models.Certificate{
		Name:        "Dinner for two",
		Description: "tasting menu",
		Price:       decimal.New(9999, -2),
		Duration:    30,
		Tags:        []models.Tag{{ID: 2, Name: "food"}},
	}
	assert.NoError(t, repo.Create(both))
	assert.NoError(t, repo.Create(onlyFood))

	c := query.Criteria{
		Predicates: []query.Predicate{
			{Kind: query.KindNotDeleted},
			{Kind: query.KindHasTag, Value: "food"},
			{Kind: query.KindHasTag, Value: "wellness"},
		},
		Window: query.Window{Page: 0, Limit: 10},
	}
	rows, err := repo.FindPage(c)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, both.ID, rows[0].ID)

	total, err := repo.Count(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMockCertificateRepository_SearchCoversNameAndDescription(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	assert.NoError(t, repo.Create(&models.Certificate{
		Name: "Spa day", Description: "relaxation voucher", Price: decimal.New(100, -2), Duration: 1,
	}))
	assert.NoError(t, repo.Create(&models.Certificate{
		Name: "Dinner", Description: "spa hotel restaurant", Price: decimal.New(100, -2), Duration: 1,
	}))
	assert.NoError(t, repo.Create(&models.Certificate{
		Name: "Cinema", Description: "two tickets", Price: decimal.New(100, -2), Duration: 1,
	}))

	c := query.Criteria{
		Predicates: []query.Predicate{{Kind: query.KindSearch, Value: "spa"}},
		Window:     query.Window{Page: 0, Limit: 10},
	}
	rows, err := repo.FindPage(c)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMockCertificateRepository_SortStableWithIDTiebreak(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	price := decimal.New(5000, -2)
	for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
		assert.NoError(t, repo.Create(&models.Certificate{
			Name: name, Description: "stub", Price: price, Duration: 1,
		}))
	}
	assert.NoError(t, repo.Create(&models.Certificate{
		Name: "Delta", Description: "stub", Price: decimal.New(100, -2), Duration: 1,
	}))

	c := query.Criteria{
		Sort: []query.SortKey{
			{Field: "price", Desc: true},
			{Field: "name"},
		},
		Window: query.Window{Page: 0, Limit: 10},
	}
	rows, err := repo.FindPage(c)
	assert.NoError(t, err)
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta"}, names)
}

func TestMockCertificateRepository_SoftDeleteHidesFromReads(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	seedRepo(t, repo, 2)

	assert.NoError(t, repo.Delete(1))

	_, err := repo.FindByID(1)
	assert.Error(t, err)

	c := query.Criteria{
		Predicates: []query.Predicate{{Kind: query.KindNotDeleted}},
		Window:     query.Window{Page: 0, Limit: 10},
	}
	total, err := repo.Count(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMockCertificateRepository_DuplicateNameRejected(t *testing.T) {
	repo := repositories.NewMockCertificateRepository()
	seedRepo(t, repo, 1)

	err := repo.Create(&models.Certificate{
		Name: "Certificate 01", Description: "stub", Price: decimal.New(100, -2), Duration: 1,
	})
	assert.Error(t, err)
}
