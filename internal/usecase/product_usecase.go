package usecase

import (
	"fmt"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type ProductUseCase interface {
	CreateProduct(product *domain.Product) (*domain.Product, error)
	GetProductByID(id int64) (*domain.Product, error)
	UpdateProduct(id int64, product *domain.Product) (*domain.Product, error)
	DeleteProduct(id int64) error
	ListProducts() ([]domain.Product, error)
	ListProductsPaged(page, size int, sort string) (domain.Page[domain.Product], error)
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *productUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty name")
		return nil, domain.NewValidationError("name", "product name cannot be empty")
	}
	if product.Price.IsNegative() {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with negative price: %s", product.Name, product.Price)
		return nil, domain.NewValidationError("price", "product price cannot be negative")
	}

	categories, err := uc.resolveCategories(product.Categories)
	if err != nil {
		uc.log.Warnf("Use Case: Category resolution failed during product creation: %v", err)
		return nil, err
	}
	product.Categories = categories
	product.ID = 0

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Name)
	createdProduct, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", createdProduct.Name, createdProduct.ID)
	return createdProduct, nil
}

func (uc *productUseCase) GetProductByID(id int64) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid product ID %d: %w", id, domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return nil, err
	}

	return product, nil
}

// UpdateProduct is a whole-record overwrite: every mutable scalar field and
// the full category set are replaced by the submitted values.
func (uc *productUseCase) UpdateProduct(id int64, product *domain.Product) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid product ID: %d", id)
		return nil, fmt.Errorf("invalid product ID %d: %w", id, domain.ErrInvalidInput)
	}
	if product.Name == "" {
		uc.log.Warnf("Use Case: Attempted update for ID %d with empty name", id)
		return nil, domain.NewValidationError("name", "product name cannot be empty")
	}
	if product.Price.IsNegative() {
		uc.log.Warnf("Use Case: Attempted update for ID %d with negative price: %s", id, product.Price)
		return nil, domain.NewValidationError("price", "product price cannot be negative")
	}

	if _, err := uc.productRepo.GetProductByID(id); err != nil {
		uc.log.Warnf("Use Case: Product ID %d not found for update: %v", id, err)
		return nil, err
	}

	categories, err := uc.resolveCategories(product.Categories)
	if err != nil {
		uc.log.Warnf("Use Case: Category resolution failed during product update for ID %d: %v", id, err)
		return nil, err
	}
	product.Categories = categories
	product.ID = id

	uc.log.Infof("Use Case: Attempting to update product ID %d", id)
	updatedProduct, err := uc.productRepo.UpdateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", updatedProduct.ID)
	return updatedProduct, nil
}

func (uc *productUseCase) DeleteProduct(id int64) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid product ID: %d", id)
		return fmt.Errorf("invalid product ID %d: %w", id, domain.ErrInvalidInput)
	}
	uc.log.Infof("Use Case: Attempting to delete product ID %d", id)
	err := uc.productRepo.DeleteProduct(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}

func (uc *productUseCase) ListProducts() ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) ListProductsPaged(page, size int, sort string) (domain.Page[domain.Product], error) {
	page, size = normalizePage(page, size)

	products, total, err := uc.productRepo.ListProductsPaged(page*size, size, sort)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products page %d: %v", page, err)
		return domain.Page[domain.Product]{}, err
	}

	uc.log.Infof("Use Case: Retrieved %d products (page: %d, size: %d)", len(products), page, size)
	return domain.NewPage(products, page, size, total), nil
}

// resolveCategories replaces each submitted category reference by the
// managed row it points at, so stale names never leak into associations.
func (uc *productUseCase) resolveCategories(refs []domain.Category) ([]domain.Category, error) {
	resolved := make([]domain.Category, 0, len(refs))
	for _, ref := range refs {
		category, err := uc.categoryRepo.GetCategoryByID(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("could not resolve category %d: %w", ref.ID, err)
		}
		resolved = append(resolved, *category)
	}
	return resolved, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
