package domain

type CategoryRepository interface {
	CreateCategory(category *Category) (*Category, error)
	GetCategoryByID(id int64) (*Category, error)
	UpdateCategory(category *Category) (*Category, error)
	DeleteCategory(id int64) error
	ListCategories() ([]Category, error)
}
