package usecase

import (
	"fmt"
	"io"
	"sort"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeCategoryRepo is an in-memory CategoryRepository. IDs in dependents
// refuse deletion the way the store refuses rows referenced by products.
type fakeCategoryRepo struct {
	categories map[int64]domain.Category
	dependents map[int64]bool
	nextID     int64
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{
		categories: make(map[int64]domain.Category),
		dependents: make(map[int64]bool),
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
		if c.ID > repo.nextID {
			repo.nextID = c.ID
		}
	}
	return repo
}

func (r *fakeCategoryRepo) CreateCategory(category *domain.Category) (*domain.Category, error) {
	r.nextID++
	category.ID = r.nextID
	r.categories[category.ID] = *category
	return category, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(id int64) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeCategoryRepo) UpdateCategory(category *domain.Category) (*domain.Category, error) {
	if _, ok := r.categories[category.ID]; !ok {
		return nil, fmt.Errorf("category with id %d: %w", category.ID, domain.ErrNotFound)
	}
	r.categories[category.ID] = *category
	return category, nil
}

func (r *fakeCategoryRepo) DeleteCategory(id int64) error {
	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
	}
	if r.dependents[id] {
		return fmt.Errorf("category with id %d is referenced by existing products: %w", id, domain.ErrConflict)
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListCategories() ([]domain.Category, error) {
	result := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeProductRepo struct {
	products   map[int64]domain.Product
	dependents map[int64]bool
	nextID     int64
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products:   make(map[int64]domain.Product),
		dependents: make(map[int64]bool),
	}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (r *fakeProductRepo) CreateProduct(product *domain.Product) (*domain.Product, error) {
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = *product
	return product, nil
}

func (r *fakeProductRepo) GetProductByID(id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProductRepo) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, fmt.Errorf("product with id %d: %w", product.ID, domain.ErrNotFound)
	}
	r.products[product.ID] = *product
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(id int64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	if r.dependents[id] {
		return fmt.Errorf("product with id %d is referenced by other rows: %w", id, domain.ErrConflict)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListProducts() ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeProductRepo) ListProductsPaged(offset, limit int, sort string) ([]domain.Product, int64, error) {
	all, _ := r.ListProducts()
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Product{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID > repo.nextID {
			repo.nextID = u.ID
		}
	}
	return repo
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("user with email '%s' already exists: %w", user.Email, domain.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) UpdateUser(user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, fmt.Errorf("user with id %d: %w", user.ID, domain.ErrNotFound)
	}
	r.users[user.ID] = *user
	return user, nil
}

func (r *fakeUserRepo) UpdateUserPassword(id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) DeleteUser(id int64) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListUsers() ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) ListUsersPaged(offset, limit int, sort string) ([]domain.User, int64, error) {
	all, _ := r.ListUsers()
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) SearchUserAuthDetails(email string) ([]domain.UserAuthDetails, error) {
	details := []domain.UserAuthDetails{}
	for _, u := range r.users {
		if u.Email != email {
			continue
		}
		for _, role := range u.Roles {
			details = append(details, domain.UserAuthDetails{
				Email:        u.Email,
				PasswordHash: u.PasswordHash,
				RoleID:       role.ID,
				Authority:    role.Authority,
			})
		}
	}
	return details, nil
}

type fakeRoleRepo struct {
	roles map[int64]domain.Role
}

func newFakeRoleRepo(roles ...domain.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[int64]domain.Role)}
	for _, role := range roles {
		repo.roles[role.ID] = role
	}
	return repo
}

func (r *fakeRoleRepo) GetRoleByID(id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, fmt.Errorf("role with id %d: %w", id, domain.ErrNotFound)
	}
	return &role, nil
}

func (r *fakeRoleRepo) ListRoles() ([]domain.Role, error) {
	result := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		result = append(result, role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
