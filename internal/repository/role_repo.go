package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresRoleRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresRoleRepository(db *sql.DB, logger *logrus.Logger) domain.RoleRepository {
	return &postgresRoleRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresRoleRepository) GetRoleByID(id int64) (*domain.Role, error) {
	query := `SELECT id, authority FROM roles WHERE id = $1`
	role := &domain.Role{}
	err := r.db.QueryRow(query, id).Scan(&role.ID, &role.Authority)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Role with ID %d not found", id)
			return nil, fmt.Errorf("role with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: Failed to get role by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get role by id: %w", err)
	}
	return role, nil
}

func (r *postgresRoleRepository) ListRoles() ([]domain.Role, error) {
	query := `SELECT id, authority FROM roles ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list roles: %v", err)
		return nil, fmt.Errorf("could not list roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Authority); err != nil {
			r.log.Errorf("Repository: Failed to scan role row: %v", err)
			return nil, fmt.Errorf("error scanning role data: %w", err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during roles list iteration: %v", err)
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	r.log.Infof("Repository: Retrieved %d roles", len(roles))
	return roles, nil
}
