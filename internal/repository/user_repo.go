package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var userSortColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
}

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	err := withTx(r.db, func(tx *sql.Tx) error {
		query := `
        INSERT INTO users (first_name, last_name, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
		err := tx.QueryRow(query, user.FirstName, user.LastName, user.Email, user.PasswordHash).Scan(&user.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fmt.Errorf("user with email '%s' already exists: %w", user.Email, domain.ErrConflict)
			}
			return fmt.Errorf("could not create user: %w", err)
		}
		return insertUserRoles(tx, user.ID, user.Roles)
	})
	if err != nil {
		r.log.Errorf("Repository: Failed to create user '%s': %v", user.Email, err)
		return nil, err
	}

	r.log.Infof("Repository: User created successfully with ID: %d, Email: %s", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(id int64) (*domain.User, error) {
	query := `
        SELECT id, first_name, last_name, email, password_hash
        FROM users
        WHERE id = $1`
	user := &domain.User{}

	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %d not found", id)
			return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	rolesByUser, err := r.loadRoles([]int64{id})
	if err != nil {
		return nil, err
	}
	user.Roles = rolesByUser[id]
	if user.Roles == nil {
		user.Roles = []domain.Role{}
	}

	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
        SELECT id, first_name, last_name, email, password_hash
        FROM users
        WHERE email = $1`
	user := &domain.User{}

	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) UpdateUser(user *domain.User) (*domain.User, error) {
	err := withTx(r.db, func(tx *sql.Tx) error {
		query := `
        UPDATE users
        SET first_name = $1, last_name = $2, email = $3
        WHERE id = $4`
		result, err := tx.Exec(query, user.FirstName, user.LastName, user.Email, user.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fmt.Errorf("user with email '%s' already exists: %w", user.Email, domain.ErrConflict)
			}
			return fmt.Errorf("could not update user: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not confirm user update: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("user with id %d: %w", user.ID, domain.ErrNotFound)
		}

		if _, err := tx.Exec(`DELETE FROM user_roles WHERE user_id = $1`, user.ID); err != nil {
			return fmt.Errorf("could not clear user roles: %w", err)
		}
		return insertUserRoles(tx, user.ID, user.Roles)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Warnf("Repository: User with ID %d not found for update", user.ID)
		} else {
			r.log.Errorf("Repository: Failed to update user ID %d: %v", user.ID, err)
		}
		return nil, err
	}

	r.log.Infof("Repository: User updated successfully with ID: %d", user.ID)
	return user, nil
}

func (r *postgresUserRepository) UpdateUserPassword(id int64, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to update password for user ID %d: %v", id, err)
		return fmt.Errorf("could not update user password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm user password update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: User with ID %d not found for password update", id)
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Repository: Password updated for user ID: %d", id)
	return nil
}

func (r *postgresUserRepository) DeleteUser(id int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Repository: User ID %d is referenced by other rows", id)
			return fmt.Errorf("user with id %d is referenced by other rows: %w", id, domain.ErrConflict)
		}
		r.log.Errorf("Repository: Failed to delete user ID %d: %v", id, err)
		return fmt.Errorf("could not delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting user ID %d: %v", id, err)
		return fmt.Errorf("could not confirm user deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent user ID %d", id)
		return fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Repository: User deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresUserRepository) ListUsers() ([]domain.User, error) {
	query := `
        SELECT id, first_name, last_name, email, password_hash
        FROM users
        ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list users: %v", err)
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users, err := r.scanUsers(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachRoles(users); err != nil {
		return nil, err
	}

	r.log.Infof("Repository: Retrieved %d users", len(users))
	return users, nil
}

func (r *postgresUserRepository) ListUsersPaged(offset, limit int, sort string) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		r.log.Errorf("Repository: Failed to count users: %v", err)
		return nil, 0, fmt.Errorf("could not count users: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT id, first_name, last_name, email, password_hash
        FROM users
        %s
        LIMIT $1 OFFSET $2`, orderClause(sort, "id", userSortColumns))
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.log.Errorf("Repository: Failed to list users with limit %d, offset %d: %v", limit, offset, err)
		return nil, 0, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users, err := r.scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachRoles(users); err != nil {
		return nil, 0, err
	}

	r.log.Infof("Repository: Retrieved %d users (limit: %d, offset: %d, total: %d)", len(users), limit, offset, total)
	return users, total, nil
}

func (r *postgresUserRepository) SearchUserAuthDetails(email string) ([]domain.UserAuthDetails, error) {
	query := `
        SELECT u.email, u.password_hash, ro.id, ro.authority
        FROM users u
        JOIN user_roles ur ON ur.user_id = u.id
        JOIN roles ro ON ro.id = ur.role_id
        WHERE u.email = $1
        ORDER BY ro.id ASC`
	rows, err := r.db.Query(query, email)
	if err != nil {
		r.log.Errorf("Repository: Failed to search auth details for %s: %v", email, err)
		return nil, fmt.Errorf("could not search user auth details: %w", err)
	}
	defer rows.Close()

	details := []domain.UserAuthDetails{}
	for rows.Next() {
		var row domain.UserAuthDetails
		if err := rows.Scan(&row.Email, &row.PasswordHash, &row.RoleID, &row.Authority); err != nil {
			r.log.Errorf("Repository: Failed to scan auth details row: %v", err)
			return nil, fmt.Errorf("error scanning user auth details: %w", err)
		}
		details = append(details, row)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during auth details iteration: %v", err)
		return nil, fmt.Errorf("error iterating user auth details: %w", err)
	}
	return details, nil
}

func (r *postgresUserRepository) scanUsers(rows *sql.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName,
			&user.Email, &user.PasswordHash); err != nil {
			r.log.Errorf("Repository: Failed to scan user row: %v", err)
			return nil, fmt.Errorf("error scanning user data: %w", err)
		}
		user.Roles = []domain.Role{}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during users list iteration: %v", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) attachRoles(users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	rolesByUser, err := r.loadRoles(ids)
	if err != nil {
		return err
	}
	for i := range users {
		if roles, ok := rolesByUser[users[i].ID]; ok {
			users[i].Roles = roles
		}
	}
	return nil
}

func (r *postgresUserRepository) loadRoles(userIDs []int64) (map[int64][]domain.Role, error) {
	query := `
        SELECT ur.user_id, ro.id, ro.authority
        FROM user_roles ur
        JOIN roles ro ON ro.id = ur.role_id
        WHERE ur.user_id = ANY($1)
        ORDER BY ro.id ASC`
	rows, err := r.db.Query(query, pq.Array(userIDs))
	if err != nil {
		r.log.Errorf("Repository: Failed to load user roles: %v", err)
		return nil, fmt.Errorf("could not load user roles: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Role)
	for rows.Next() {
		var userID int64
		var role domain.Role
		if err := rows.Scan(&userID, &role.ID, &role.Authority); err != nil {
			r.log.Errorf("Repository: Failed to scan user role row: %v", err)
			return nil, fmt.Errorf("error scanning user role data: %w", err)
		}
		result[userID] = append(result[userID], role)
	}
	if err := rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during user roles iteration: %v", err)
		return nil, fmt.Errorf("error iterating user roles: %w", err)
	}
	return result, nil
}

func insertUserRoles(tx *sql.Tx, userID int64, roles []domain.Role) error {
	for _, role := range roles {
		_, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, role.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return fmt.Errorf("role with id %d: %w", role.ID, domain.ErrNotFound)
			}
			return fmt.Errorf("could not link user %d to role %d: %w", userID, role.ID, err)
		}
	}
	return nil
}
