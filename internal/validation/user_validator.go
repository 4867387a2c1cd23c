package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/NogueiraLn/dscatalog/internal/domain"
)

// ValidateUserInsert checks an incoming user before it is persisted. A
// non-nil result carries field-level errors and means the write must not
// be attempted.
func ValidateUserInsert(repo domain.UserRepository, dto *domain.UserInsertDTO) (*domain.ValidationError, error) {
	ve := &domain.ValidationError{}

	validateUserFields(ve, dto.FirstName, dto.Email)
	if msg := passwordMessage(dto.Password); msg != "" {
		ve.Add("password", msg)
	}

	if dto.Email != "" {
		owner, err := repo.GetUserByEmail(dto.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if owner != nil {
			ve.Add("email", "email already exists")
		}
	}

	if ve.HasErrors() {
		return ve, nil
	}
	return nil, nil
}

// ValidateUserUpdate checks a profile update. The email uniqueness rule
// admits the user's own current email: only an email owned by a different
// id fails. When nobody owns the email the lookup result is nil and the
// email is automatically valid.
func ValidateUserUpdate(repo domain.UserRepository, id int64, dto *domain.UserUpdateDTO) (*domain.ValidationError, error) {
	ve := &domain.ValidationError{}

	validateUserFields(ve, dto.FirstName, dto.Email)

	if dto.Email != "" {
		owner, err := repo.GetUserByEmail(dto.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if owner != nil && owner.ID != id {
			ve.Add("email", "email already exists")
		}
	}

	if ve.HasErrors() {
		return ve, nil
	}
	return nil, nil
}

// ValidatePassword applies the password complexity rules used for both
// user insertion and the dedicated change-password operation.
func ValidatePassword(password string) (*domain.ValidationError, error) {
	if msg := passwordMessage(password); msg != "" {
		ve := &domain.ValidationError{}
		ve.Add("password", msg)
		return ve, nil
	}
	return nil, nil
}

func validateUserFields(ve *domain.ValidationError, firstName, email string) {
	if strings.TrimSpace(firstName) == "" {
		ve.Add("first_name", "first name cannot be empty")
	}
	if !isValidEmail(email) {
		ve.Add("email", "invalid email format")
	}
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}

func passwordMessage(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters long"
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		return "password must contain at least one uppercase letter"
	}
	if !hasLower {
		return "password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return "password must contain at least one digit"
	}
	return ""
}
