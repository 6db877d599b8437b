package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
	"gorm.io/gorm"
)

// defaultTeamName is the team every new user is placed into at registration.
const defaultTeamName = "Home"

type AuthService struct {
	stores *store.Stores
}

func NewAuthService(stores *store.Stores) *AuthService {
	return &AuthService{stores: stores}
}

// SignUp registers a new user and creates their default team. Both writes
// happen in one transaction so a failed team creation never leaves an
// orphan user behind.
func (s *AuthService) SignUp(firstName, lastName, email, password string) (*models.User, *Error) {
	if _, err := s.stores.Users.FindByEmail(email); err == nil {
		return nil, errConflict(fmt.Sprintf("User with email %s already exists", email))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInternal("failed checking email", err)
	}

	salt, err := utils.NewSalt()
	if err != nil {
		return nil, errInternal("failed generating salt", err)
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: utils.HashPassword(password, salt),
		Salt:         salt,
		Role:         models.UserRoleUser,
		IsActive:     true,
	}

	err = s.stores.Transaction(func(tx *store.Stores) error {
		if err := tx.Users.Create(user); err != nil {
			return err
		}
		team := &models.Team{Name: defaultTeamName}
		return tx.Teams.Create(team, user.ID)
	})
	if err != nil {
		logger.Error("signup_failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, errInternal("failed registering user", err)
	}

	return user, nil
}

// SignIn verifies credentials and issues a signed token. Every failure past
// input validation collapses into one message so callers cannot tell which
// factor was wrong.
func (s *AuthService) SignIn(email, password string) (string, *Error) {
	if email == "" || password == "" {
		return "", errValidation("email and password are required")
	}

	user, err := s.stores.Users.FindByEmail(email)
	if err != nil {
		return "", errUnauthorized("Incorrect email or password")
	}

	if !utils.CheckPassword(password, user.Salt, user.PasswordHash) {
		return "", errUnauthorized("Incorrect email or password")
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return "", errInternal("failed issuing token", err)
	}

	return token, nil
}

// ChangePassword re-verifies the old password before persisting a fresh
// salt and digest.
func (s *AuthService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) *Error {
	if oldPassword == "" || newPassword == "" {
		return errValidation("oldPassword and newPassword are required")
	}

	user, err := s.stores.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("User not found")
		}
		return errInternal("failed loading user", err)
	}

	if !utils.CheckPassword(oldPassword, user.Salt, user.PasswordHash) {
		return errValidation("Incorrect old password")
	}

	salt, err := utils.NewSalt()
	if err != nil {
		return errInternal("failed generating salt", err)
	}

	if err := s.stores.Users.UpdatePassword(userID, utils.HashPassword(newPassword, salt), salt); err != nil {
		return errInternal("failed updating password", err)
	}

	return nil
}
