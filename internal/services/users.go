package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/logger"
	"gorm.io/gorm"
)

type UsersService struct {
	stores *store.Stores
}

func NewUsersService(stores *store.Stores) *UsersService {
	return &UsersService{stores: stores}
}

// GetInfo returns the user aggregate with short links and team memberships
// eager-loaded.
func (s *UsersService) GetInfo(userID uuid.UUID) (*models.User, []models.Team, *Error) {
	user, err := s.stores.Users.GetWithURLs(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errNotFound("User not found")
		}
		return nil, nil, errInternal("failed loading user", err)
	}

	teams, err := s.stores.Teams.ListForUser(userID)
	if err != nil {
		return nil, nil, errInternal("failed loading teams", err)
	}

	return user, teams, nil
}

type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// UpdateProfile applies only the provided fields.
func (s *UsersService) UpdateProfile(userID uuid.UUID, patch ProfilePatch) (*models.User, *Error) {
	user, err := s.stores.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		return nil, errInternal("failed loading user", err)
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}

	if err := s.stores.Users.Save(user); err != nil {
		return nil, errInternal("failed updating user", err)
	}

	return user, nil
}

// DeleteAccount removes the user and conditionally cascades into their
// teams: a team is torn down, URLs first, only when the departing user is
// its last member. Teams with other members survive untouched and merely
// lose the membership edge. The whole teardown runs in one transaction.
func (s *UsersService) DeleteAccount(userID uuid.UUID) *Error {
	if _, err := s.stores.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("User not found")
		}
		return errInternal("failed loading user", err)
	}

	teams, err := s.stores.Teams.ListForUser(userID)
	if err != nil {
		return errInternal("failed loading teams", err)
	}

	err = s.stores.Transaction(func(tx *store.Stores) error {
		for _, team := range teams {
			// Re-derive the team through the membership-scoped lookup to
			// confirm access before acting on it.
			if _, err := tx.Teams.GetByIDAndUserID(team.ID, userID); err != nil {
				return err
			}

			count, err := tx.Teams.CountMembers(team.ID)
			if err != nil {
				return err
			}

			if count == 1 {
				if err := tx.URLs.DeleteByTeam(team.ID); err != nil {
					return err
				}
				if err := tx.Teams.DeleteMemberships(team.ID); err != nil {
					return err
				}
				if err := tx.Teams.Delete(team.ID); err != nil {
					return err
				}
			}
		}

		if err := tx.Teams.RemoveMembershipsForUser(userID); err != nil {
			return err
		}
		if err := tx.URLs.DetachUser(userID); err != nil {
			return err
		}
		return tx.Users.Delete(userID)
	})
	if err != nil {
		logger.Error("account_deletion_failed", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return errInternal("failed deleting account", err)
	}

	return nil
}
