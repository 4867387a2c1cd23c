package usecase

import (
	"testing"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryUseCase_CreateIgnoresClientID(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := NewCategoryUseCase(repo, testLogger())

	created, err := uc.CreateCategory(&domain.Category{ID: 99, Name: "Electronics"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	_, hadClientID := repo.categories[99]
	assert.False(t, hadClientID)
}

func TestCategoryUseCase_CreateEmptyNameFailsValidation(t *testing.T) {
	uc := NewCategoryUseCase(newFakeCategoryRepo(), testLogger())

	_, err := uc.CreateCategory(&domain.Category{})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
}

func TestCategoryUseCase_GetByID(t *testing.T) {
	repo := newFakeCategoryRepo(domain.Category{ID: 1, Name: "Electronics"})
	uc := NewCategoryUseCase(repo, testLogger())

	category, err := uc.GetCategoryByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, "Electronics", category.Name)

	_, err = uc.GetCategoryByID(100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_Update(t *testing.T) {
	repo := newFakeCategoryRepo(domain.Category{ID: 1, Name: "Electronics"})
	uc := NewCategoryUseCase(repo, testLogger())

	updated, err := uc.UpdateCategory(1, &domain.Category{Name: "Books"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Books", updated.Name)

	_, err = uc.UpdateCategory(100, &domain.Category{Name: "Books"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_Delete(t *testing.T) {
	repo := newFakeCategoryRepo(
		domain.Category{ID: 1, Name: "Electronics"},
		domain.Category{ID: 2, Name: "Books"},
	)
	repo.dependents[1] = true
	uc := NewCategoryUseCase(repo, testLogger())

	// Referenced by products: the row must stay.
	err := uc.DeleteCategory(1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.GetCategoryByID(1)
	assert.NoError(t, err)

	require.NoError(t, uc.DeleteCategory(2))
	_, err = uc.GetCategoryByID(2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.DeleteCategory(100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_ListReturnsStoreOrder(t *testing.T) {
	repo := newFakeCategoryRepo(
		domain.Category{ID: 2, Name: "Books"},
		domain.Category{ID: 1, Name: "Electronics"},
	)
	uc := NewCategoryUseCase(repo, testLogger())

	categories, err := uc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, int64(2), categories[1].ID)
}
