package usecase

import (
	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/sirupsen/logrus"
)

type RoleUseCase interface {
	ListRoles() ([]domain.Role, error)
}

type roleUseCase struct {
	roleRepo domain.RoleRepository
	log      *logrus.Logger
}

func NewRoleUseCase(repo domain.RoleRepository, logger *logrus.Logger) RoleUseCase {
	return &roleUseCase{
		roleRepo: repo,
		log:      logger,
	}
}

func (uc *roleUseCase) ListRoles() ([]domain.Role, error) {
	roles, err := uc.roleRepo.ListRoles()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list roles: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d roles", len(roles))
	return roles, nil
}
