package domain

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int64) (*Product, error)

	// UpdateProduct overwrites every mutable field and replaces the
	// category association set in a single transaction.
	UpdateProduct(product *Product) (*Product, error)

	DeleteProduct(id int64) error
	ListProducts() ([]Product, error)

	// ListProductsPaged returns one page plus the total row count.
	ListProductsPaged(offset, limit int, sort string) ([]Product, int64, error)
}
