package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// productSortColumns maps sort parameter names to the columns clients may
// order product listings by.
var productSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"price":        "price",
	"release_date": "release_date",
}

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	err := withTx(r.db, func(tx *sql.Tx) error {
		query := `
        INSERT INTO products (name, description, price, image_url, release_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
		err := tx.QueryRow(query, product.Name, product.Description, product.Price,
			product.ImageURL, product.ReleaseDate).Scan(&product.ID)
		if err != nil {
			return fmt.Errorf("could not create product: %w", err)
		}
		return insertProductCategories(tx, product.ID, product.Categories)
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	r.log.Infof("Repository: Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int64) (*domain.Product, error) {
	query := `
        SELECT id, name, description, price, image_url, release_date
        FROM products
        WHERE id = $1`
	product := &domain.Product{}

	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.ReleaseDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	categoriesByProduct, err := r.loadCategories([]int64{id})
	if err != nil {
		return nil, err
	}
	product.Categories = categoriesByProduct[id]
	if product.Categories == nil {
		product.Categories = []domain.Category{}
	}

	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	err := withTx(r.db, func(tx *sql.Tx) error {
		query := `
        UPDATE products
        SET name = $1, description = $2, price = $3, image_url = $4, release_date = $5
        WHERE id = $6`
		result, err := tx.Exec(query, product.Name, product.Description, product.Price,
			product.ImageURL, product.ReleaseDate, product.ID)
		if err != nil {
			return fmt.Errorf("could not update product: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not confirm product update: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("product with id %d: %w", product.ID, domain.ErrNotFound)
		}

		// Replace the whole association set, never mutate it piecemeal.
		if _, err := tx.Exec(`DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("could not clear product categories: %w", err)
		}
		return insertProductCategories(tx, product.ID, product.Categories)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Warnf("Repository: Product with ID %d not found for update", product.ID)
		} else {
			r.log.Errorf("Repository: Failed to update product ID %d: %v", product.ID, err)
		}
		return nil, err
	}

	r.log.Infof("Repository: Product updated successfully with ID: %d", product.ID)
	return product, nil
}

func (r *postgresProductRepository) DeleteProduct(id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Repository: Product ID %d is referenced by other rows", id)
			return fmt.Errorf("product with id %d is referenced by other rows: %w", id, domain.ErrConflict)
		}
		r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, description, price, image_url, release_date
        FROM products
        ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachCategories(products); err != nil {
		return nil, err
	}

	r.log.Infof("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) ListProductsPaged(offset, limit int, sort string) ([]domain.Product, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		r.log.Errorf("Repository: Failed to count products: %v", err)
		return nil, 0, fmt.Errorf("could not count products: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT id, name, description, price, image_url, release_date
        FROM products
        %s
        LIMIT $1 OFFSET $2`, orderClause(sort, "id", productSortColumns))
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products with limit %d, offset %d: %v", limit, offset, err)
		return nil, 0, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachCategories(products); err != nil {
		return nil, 0, err
	}

	r.log.Infof("Repository: Retrieved %d products (limit: %d, offset: %d, total: %d)", len(products), limit, offset, total)
	return products, total, nil
}

func (r *postgresProductRepository) scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description,
			&product.Price, &product.ImageURL, &product.ReleaseDate); err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		product.Categories = []domain.Category{}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) attachCategories(products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	categoriesByProduct, err := r.loadCategories(ids)
	if err != nil {
		return err
	}
	for i := range products {
		if cats, ok := categoriesByProduct[products[i].ID]; ok {
			products[i].Categories = cats
		}
	}
	return nil
}

// loadCategories fetches the category summaries for a set of products in a
// single join query, keyed by product id.
func (r *postgresProductRepository) loadCategories(productIDs []int64) (map[int64][]domain.Category, error) {
	query := `
        SELECT pc.product_id, c.id, c.name
        FROM product_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.product_id = ANY($1)
        ORDER BY c.id ASC`
	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		r.log.Errorf("Repository: Failed to load product categories: %v", err)
		return nil, fmt.Errorf("could not load product categories: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Category)
	for rows.Next() {
		var productID int64
		var category domain.Category
		if err := rows.Scan(&productID, &category.ID, &category.Name); err != nil {
			r.log.Errorf("Repository: Failed to scan product category row: %v", err)
			return nil, fmt.Errorf("error scanning product category data: %w", err)
		}
		result[productID] = append(result[productID], category)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during product categories iteration: %v", err)
		return nil, fmt.Errorf("error iterating product categories: %w", err)
	}
	return result, nil
}

func insertProductCategories(tx *sql.Tx, productID int64, categories []domain.Category) error {
	for _, category := range categories {
		_, err := tx.Exec(`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID, category.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return fmt.Errorf("category with id %d: %w", category.ID, domain.ErrNotFound)
			}
			return fmt.Errorf("could not link product %d to category %d: %w", productID, category.ID, err)
		}
	}
	return nil
}
