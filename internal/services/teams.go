package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/logger"
	"gorm.io/gorm"
)

type TeamsService struct {
	stores *store.Stores
}

func NewTeamsService(stores *store.Stores) *TeamsService {
	return &TeamsService{stores: stores}
}

// CreateTeam creates a team with the owner as its only member. Name
// uniqueness is enforced here, at creation time only.
func (s *TeamsService) CreateTeam(ownerID uuid.UUID, name string, icon *string) (*models.Team, *Error) {
	if name == "" {
		return nil, errValidation("name is required")
	}

	if _, err := s.stores.Teams.FindByName(name); err == nil {
		return nil, errConflict(fmt.Sprintf("Team with name %s already exists", name))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInternal("failed checking team name", err)
	}

	if _, err := s.stores.Users.FindByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		return nil, errInternal("failed loading user", err)
	}

	team := &models.Team{Name: name, Icon: icon}
	if err := s.stores.Teams.Create(team, ownerID); err != nil {
		return nil, errInternal("failed creating team", err)
	}

	// Reload through the membership-scoped lookup so the caller gets the
	// memberships eager-loaded.
	return s.memberTeam(team.ID, ownerID)
}

type TeamPatch struct {
	Name *string
	Icon *string
}

// UpdateTeam applies only the provided fields. The membership-scoped lookup
// doubles as the authorization check.
func (s *TeamsService) UpdateTeam(userID, teamID uuid.UUID, patch TeamPatch) (*models.Team, *Error) {
	team, serr := s.memberTeam(teamID, userID)
	if serr != nil {
		return nil, serr
	}

	if patch.Name == nil && patch.Icon == nil {
		return team, nil
	}

	if patch.Name != nil {
		team.Name = *patch.Name
	}
	if patch.Icon != nil {
		team.Icon = patch.Icon
	}

	if err := s.stores.Teams.Save(team); err != nil {
		return nil, errInternal("failed updating team", err)
	}

	return team, nil
}

// DeleteTeam removes the team, its URLs and its membership rows.
func (s *TeamsService) DeleteTeam(userID, teamID uuid.UUID) *Error {
	if _, serr := s.memberTeam(teamID, userID); serr != nil {
		return serr
	}

	err := s.stores.Transaction(func(tx *store.Stores) error {
		if err := tx.URLs.DeleteByTeam(teamID); err != nil {
			return err
		}
		if err := tx.Teams.DeleteMemberships(teamID); err != nil {
			return err
		}
		return tx.Teams.Delete(teamID)
	})
	if err != nil {
		return errInternal("failed deleting team", err)
	}

	return nil
}

// AddMembers resolves every email to a user and appends the ones not
// already on the team. Resolution is all-or-nothing: one unknown email
// fails the whole call.
func (s *TeamsService) AddMembers(userID, teamID uuid.UUID, emails []string) *Error {
	if len(emails) == 0 {
		return errValidation("membersEmails is required")
	}

	team, serr := s.memberTeam(teamID, userID)
	if serr != nil {
		return serr
	}

	users, err := s.stores.Users.FindByEmails(emails)
	if err != nil {
		return errInternal("failed resolving members", err)
	}

	byEmail := make(map[string]models.User, len(users))
	for _, user := range users {
		byEmail[user.Email] = user
	}
	for _, email := range emails {
		if _, ok := byEmail[email]; !ok {
			return errNotFound(fmt.Sprintf("User with email %s not found", email))
		}
	}

	existing := make(map[uuid.UUID]bool, len(team.Memberships))
	for _, membership := range team.Memberships {
		existing[membership.UserID] = true
	}

	added := 0
	for _, user := range users {
		if existing[user.ID] {
			continue
		}
		if err := s.stores.Teams.AddMember(teamID, user.ID); err != nil {
			return errInternal("failed adding member", err)
		}
		added++
	}

	if added > 0 {
		if err := s.stores.Teams.Save(team); err != nil {
			return errInternal("failed updating team", err)
		}
	}

	logger.InfoWithUser(userID.String(), "team_members_added", map[string]interface{}{
		"team_id": teamID.String(),
		"count":   added,
	})

	return nil
}

// RemoveMembers drops the listed members from the team. The call fails only
// when no email resolves to an existing user; emails of users who are not
// current members are tolerated and reported back in the message, so the
// whole call may succeed as a no-op.
func (s *TeamsService) RemoveMembers(userID, teamID uuid.UUID, emails []string) (string, *Error) {
	if len(emails) == 0 {
		return "", errValidation("membersEmails is required")
	}

	team, serr := s.memberTeam(teamID, userID)
	if serr != nil {
		return "", serr
	}

	users, err := s.stores.Users.FindByEmails(emails)
	if err != nil {
		return "", errInternal("failed resolving members", err)
	}
	if len(users) == 0 {
		return "", errNotFound("Users not found")
	}

	memberByEmail := make(map[string]uuid.UUID, len(team.Memberships))
	for _, membership := range team.Memberships {
		memberByEmail[membership.User.Email] = membership.UserID
	}

	var matched []uuid.UUID
	var notFound []string
	for _, email := range emails {
		if id, ok := memberByEmail[email]; ok {
			matched = append(matched, id)
		} else {
			notFound = append(notFound, email)
		}
	}

	if err := s.stores.Teams.RemoveMembers(teamID, matched); err != nil {
		return "", errInternal("failed removing members", err)
	}
	if err := s.stores.Teams.Save(team); err != nil {
		return "", errInternal("failed updating team", err)
	}

	message := "Members removed successfully."
	if len(notFound) > 0 {
		message += fmt.Sprintf(" Emails not found: %s.", strings.Join(notFound, ", "))
	}

	return message, nil
}

// GetTeam is the membership-scoped lookup exposed as an endpoint.
func (s *TeamsService) GetTeam(userID, teamID uuid.UUID) (*models.Team, *Error) {
	return s.memberTeam(teamID, userID)
}

// ListTeamsForUser returns every team the user belongs to; zero teams is a
// NotFound, matching the original API.
func (s *TeamsService) ListTeamsForUser(userID uuid.UUID) ([]models.Team, *Error) {
	teams, err := s.stores.Teams.ListForUser(userID)
	if err != nil {
		return nil, errInternal("failed listing teams", err)
	}
	if len(teams) == 0 {
		return nil, errNotFound("Teams not found")
	}
	return teams, nil
}

// memberTeam collapses "team does not exist" and "caller is not a member"
// into one NotFound so callers cannot probe for teams they cannot access.
func (s *TeamsService) memberTeam(teamID, userID uuid.UUID) (*models.Team, *Error) {
	team, err := s.stores.Teams.GetByIDAndUserID(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Team not found")
		}
		return nil, errInternal("failed loading team", err)
	}
	return team, nil
}
