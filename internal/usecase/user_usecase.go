package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NogueiraLn/dscatalog/internal/domain"
	"github.com/NogueiraLn/dscatalog/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	CreateUser(dto *domain.UserInsertDTO) (*domain.UserDTO, error)
	GetUserByID(id int64) (*domain.UserDTO, error)
	UpdateUser(id int64, dto *domain.UserUpdateDTO) (*domain.UserDTO, error)
	ChangePassword(id int64, dto *domain.UserPasswordDTO) error
	DeleteUser(id int64) error
	ListUsers() ([]domain.UserDTO, error)
	ListUsersPaged(page, size int, sort string) (domain.Page[domain.UserDTO], error)

	// LoadUserByEmail assembles the authentication principal from the
	// user/role join projection without loading the full entity.
	LoadUserByEmail(email string) (*domain.Principal, error)

	AuthenticateUser(email, password string) (*domain.AuthResponse, error)
}

type userUseCase struct {
	userRepo   domain.UserRepository
	roleRepo   domain.RoleRepository
	bcryptCost int
	log        *logrus.Logger
}

func NewUserUseCase(uRepo domain.UserRepository, rRepo domain.RoleRepository, bcryptCost int, logger *logrus.Logger) UserUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userUseCase{
		userRepo:   uRepo,
		roleRepo:   rRepo,
		bcryptCost: bcryptCost,
		log:        logger,
	}
}

func (uc *userUseCase) CreateUser(dto *domain.UserInsertDTO) (*domain.UserDTO, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	uc.log.Infof("Use Case: Attempting to create user with email: %s", dto.Email)

	ve, err := validation.ValidateUserInsert(uc.userRepo, dto)
	if err != nil {
		uc.log.Errorf("Use Case: Validation lookup failed for %s: %v", dto.Email, err)
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if ve != nil {
		uc.log.Warnf("Use Case: User creation failed validation for %s: %v", dto.Email, ve)
		return nil, ve
	}

	roles, err := uc.resolveRoles(dto.Roles)
	if err != nil {
		uc.log.Warnf("Use Case: Role resolution failed during user creation: %v", err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), uc.bcryptCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", dto.Email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PasswordHash: string(hashedPassword),
		Roles:        roles,
	}

	createdUser, err := uc.userRepo.CreateUser(newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", dto.Email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User created successfully. ID: %d, Email: %s", createdUser.ID, createdUser.Email)
	return toUserDTO(createdUser), nil
}

func (uc *userUseCase) GetUserByID(id int64) (*domain.UserDTO, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get user with invalid ID: %d", id)
		return nil, fmt.Errorf("invalid user ID %d: %w", id, domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get user ID %d: %v", id, err)
		return nil, err
	}

	return toUserDTO(user), nil
}

// UpdateUser overwrites the profile fields and the full role set. It never
// touches the password; password changes go through ChangePassword.
func (uc *userUseCase) UpdateUser(id int64, dto *domain.UserUpdateDTO) (*domain.UserDTO, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid user ID: %d", id)
		return nil, fmt.Errorf("invalid user ID %d: %w", id, domain.ErrInvalidInput)
	}
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))

	ve, err := validation.ValidateUserUpdate(uc.userRepo, id, dto)
	if err != nil {
		uc.log.Errorf("Use Case: Validation lookup failed for user ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if ve != nil {
		uc.log.Warnf("Use Case: User update failed validation for ID %d: %v", id, ve)
		return nil, ve
	}

	existing, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: User ID %d not found for update: %v", id, err)
		return nil, err
	}

	roles, err := uc.resolveRoles(dto.Roles)
	if err != nil {
		uc.log.Warnf("Use Case: Role resolution failed during user update for ID %d: %v", id, err)
		return nil, err
	}

	existing.FirstName = dto.FirstName
	existing.LastName = dto.LastName
	existing.Email = dto.Email
	existing.Roles = roles

	updatedUser, err := uc.userRepo.UpdateUser(existing)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update user ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User updated successfully for ID %d", updatedUser.ID)
	return toUserDTO(updatedUser), nil
}

func (uc *userUseCase) ChangePassword(id int64, dto *domain.UserPasswordDTO) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted password change with invalid user ID: %d", id)
		return fmt.Errorf("invalid user ID %d: %w", id, domain.ErrInvalidInput)
	}

	ve, err := validation.ValidatePassword(dto.Password)
	if err != nil {
		return err
	}
	if ve != nil {
		uc.log.Warnf("Use Case: Password change failed validation for user ID %d", id)
		return ve
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), uc.bcryptCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for user ID %d: %v", id, err)
		return fmt.Errorf("internal error processing password: %w", err)
	}

	if err := uc.userRepo.UpdateUserPassword(id, string(hashedPassword)); err != nil {
		uc.log.Warnf("Use Case: Repository failed to update password for user ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Password changed for user ID %d", id)
	return nil
}

func (uc *userUseCase) DeleteUser(id int64) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid user ID: %d", id)
		return fmt.Errorf("invalid user ID %d: %w", id, domain.ErrInvalidInput)
	}
	uc.log.Infof("Use Case: Attempting to delete user ID %d", id)
	err := uc.userRepo.DeleteUser(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete user ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: User deleted successfully for ID %d", id)
	return nil
}

func (uc *userUseCase) ListUsers() ([]domain.UserDTO, error) {
	users, err := uc.userRepo.ListUsers()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d users", len(users))
	return toUserDTOs(users), nil
}

func (uc *userUseCase) ListUsersPaged(page, size int, sort string) (domain.Page[domain.UserDTO], error) {
	page, size = normalizePage(page, size)

	users, total, err := uc.userRepo.ListUsersPaged(page*size, size, sort)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users page %d: %v", page, err)
		return domain.Page[domain.UserDTO]{}, err
	}

	uc.log.Infof("Use Case: Retrieved %d users (page: %d, size: %d)", len(users), page, size)
	return domain.NewPage(toUserDTOs(users), page, size, total), nil
}

func (uc *userUseCase) LoadUserByEmail(email string) (*domain.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	rows, err := uc.userRepo.SearchUserAuthDetails(email)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to search auth details for %s: %v", email, err)
		return nil, err
	}
	if len(rows) == 0 {
		uc.log.Warnf("Use Case: User not found for auth lookup: %s", email)
		return nil, fmt.Errorf("user not found: %s: %w", email, domain.ErrNotFound)
	}

	principal := &domain.Principal{
		Email:        email,
		PasswordHash: rows[0].PasswordHash,
	}
	for _, row := range rows {
		principal.Roles = append(principal.Roles, domain.Role{ID: row.RoleID, Authority: row.Authority})
	}

	return principal, nil
}

func (uc *userUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if email == "" || password == "" {
		uc.log.Warnf("Use Case: Auth failed - empty email or password")
		return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
	}

	principal, err := uc.LoadUserByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s", email)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	user, err := uc.userRepo.GetUserByEmail(email)
	if err != nil {
		uc.log.Errorf("Use Case: Error loading user %s after auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	token := uuid.NewString()
	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %d)", email, user.ID)

	return &domain.AuthResponse{
		Authenticated: true,
		Token:         token,
		UserID:        user.ID,
	}, nil
}

func (uc *userUseCase) resolveRoles(ids []int64) ([]domain.Role, error) {
	resolved := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		role, err := uc.roleRepo.GetRoleByID(id)
		if err != nil {
			return nil, fmt.Errorf("could not resolve role %d: %w", id, err)
		}
		resolved = append(resolved, *role)
	}
	return resolved, nil
}

func toUserDTO(user *domain.User) *domain.UserDTO {
	roles := user.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return &domain.UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Roles:     roles,
	}
}

func toUserDTOs(users []domain.User) []domain.UserDTO {
	dtos := make([]domain.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *toUserDTO(&users[i]))
	}
	return dtos
}
