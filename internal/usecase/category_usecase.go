package usecase

import (
	"fmt"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	CreateCategory(category *domain.Category) (*domain.Category, error)
	GetCategoryByID(id int64) (*domain.Category, error)
	UpdateCategory(id int64, category *domain.Category) (*domain.Category, error)
	DeleteCategory(id int64) error
	ListCategories() ([]domain.Category, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return nil, domain.NewValidationError("name", "category name cannot be empty")
	}

	// Never honor a client-supplied id.
	category.ID = 0

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", category.Name)
	createdCategory, err := uc.categoryRepo.CreateCategory(category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", createdCategory.Name, createdCategory.ID)
	return createdCategory, nil
}

func (uc *categoryUseCase) GetCategoryByID(id int64) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get category with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid category ID %d: %w", id, domain.ErrInvalidInput)
	}

	category, err := uc.categoryRepo.GetCategoryByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return nil, err
	}

	return category, nil
}

func (uc *categoryUseCase) UpdateCategory(id int64, category *domain.Category) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid category ID %d: %w", id, domain.ErrInvalidInput)
	}
	if category.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for ID %d with empty name", id)
		return nil, domain.NewValidationError("name", "category name cannot be empty")
	}

	category.ID = id

	uc.log.Infof("Use Case: Attempting to update category ID %d", id)
	updatedCategory, err := uc.categoryRepo.UpdateCategory(category)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update category ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", updatedCategory.ID)
	return updatedCategory, nil
}

func (uc *categoryUseCase) DeleteCategory(id int64) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid ID: %d", id)
		return fmt.Errorf("invalid category ID %d: %w", id, domain.ErrInvalidInput)
	}

	uc.log.Infof("Use Case: Attempting to delete category ID %d", id)
	err := uc.categoryRepo.DeleteCategory(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}

func (uc *categoryUseCase) ListCategories() ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}
