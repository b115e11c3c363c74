package services_test

import (
	"testing"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/repositories"
	"giftcerts/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestTagService_Reconcile_CreatesMissingTags(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	resolved, err := service.Reconcile([]models.Tag{
		{Name: "food"},
		{Name: "wellness"},
	})

	assert.NoError(t, err)
	assert.Len(t, resolved, 2)
	assert.NotZero(t, resolved[0].ID)
	assert.NotZero(t, resolved[1].ID)

	// Both tags are now persisted and live.
	tag, err := repo.FindByNameIncludingDeleted("food")
	assert.NoError(t, err)
	assert.NotNil(t, tag)
	assert.False(t, tag.IsDeleted)
}

func TestTagService_Reconcile_DeduplicatesProposals(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	resolved, err := service.Reconcile([]models.Tag{
		{Name: "food"},
		{Name: " food  "},
		{Name: "food"},
	})

	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, "food", resolved[0].Name)
}

func TestTagService_Reconcile_CaseVariantsCollapseToOneIdentity(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	// "Food" and "food" survive the name dedup but resolve to the same row;
	// the resolved set carries that identity once.
	resolved, err := service.Reconcile([]models.Tag{
		{Name: "Food"},
		{Name: "food"},
	})

	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestTagService_Reconcile_RestoresSoftDeletedTag(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	existing := models.Tag{Name: "food"}
	assert.NoError(t, repo.Create(&existing))
	assert.NoError(t, repo.Delete(existing.ID))

	// Proposing "Food" while the soft-deleted "food" exists must restore the
	// existing identity, not create a duplicate.
	resolved, err := service.Reconcile([]models.Tag{{Name: "Food"}})

	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, existing.ID, resolved[0].ID)
	assert.False(t, resolved[0].IsDeleted)

	restored, err := repo.FindByNameIncludingDeleted("food")
	assert.NoError(t, err)
	assert.False(t, restored.IsDeleted)
}

func TestTagService_Reconcile_ReusesActiveTagUnchanged(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	existing := models.Tag{Name: "food"}
	assert.NoError(t, repo.Create(&existing))

	// Reconciling an already-active tag is a no-op, repeatedly.
	for i := 0; i < 2; i++ {
		resolved, err := service.Reconcile([]models.Tag{{Name: "food"}})
		assert.NoError(t, err)
		assert.Len(t, resolved, 1)
		assert.Equal(t, existing.ID, resolved[0].ID)
	}
}

func TestTagService_Reconcile_CollectsNameViolations(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	_, err := service.Reconcile([]models.Tag{
		{Name: "f"}, // below minimum length
		{Name: "a very long tag name exceeding limit"},
	})

	var validationErr *apperr.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.Has(apperr.CodeInvalidTagName))
}

func TestTagService_CreateTag(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	tag := models.Tag{Name: "  gift   card "}
	err := service.CreateTag(&tag)
	assert.NoError(t, err)
	assert.Equal(t, "gift card", tag.Name)

	// A case-insensitive duplicate surfaces as a duplicated-name validation
	// error, not a crash.
	duplicate := models.Tag{Name: "Gift Card"}
	err = service.CreateTag(&duplicate)
	var validationErr *apperr.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.Has(apperr.CodeDuplicatedTagName))
}

func TestTagService_CreateTag_InvalidName(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	err := service.CreateTag(&models.Tag{Name: "x"})

	var validationErr *apperr.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.Has(apperr.CodeInvalidTagName))
}

func TestTagService_ListTags_ExcludesDeleted(t *testing.T) {
	repo := repositories.NewMockTagRepository()
	service := services.NewTagService(repo)

	live := models.Tag{Name: "food"}
	gone := models.Tag{Name: "wellness"}
	assert.NoError(t, repo.Create(&live))
	assert.NoError(t, repo.Create(&gone))
	assert.NoError(t, repo.Delete(gone.ID))

	page, err := service.ListTags(map[string][]string{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "food", page.Items[0].Name)
}
