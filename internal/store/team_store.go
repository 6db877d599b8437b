package store

import (
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"gorm.io/gorm"
)

type teamStore struct {
	db *gorm.DB
}

func (s *teamStore) Create(team *models.Team, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		membership := models.TeamMembership{
			TeamID: team.ID,
			UserID: ownerID,
		}
		return tx.Create(&membership).Error
	})
}

func (s *teamStore) FindByName(name string) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *teamStore) GetByIDAndUserID(teamID, userID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.
		Preload("Memberships.User").
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("teams.id = ? AND team_memberships.user_id = ?", teamID, userID).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *teamStore) ListForUser(userID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.
		Model(&models.Team{}).
		Preload("Memberships.User").
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", userID).
		Order("teams.created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *teamStore) Save(team *models.Team) error {
	return s.db.Omit("Memberships", "URLs").Save(team).Error
}

func (s *teamStore) Delete(teamID uuid.UUID) error {
	return s.db.Delete(&models.Team{}, "id = ?", teamID).Error
}

func (s *teamStore) AddMember(teamID, userID uuid.UUID) error {
	membership := models.TeamMembership{
		TeamID: teamID,
		UserID: userID,
	}
	return s.db.Create(&membership).Error
}

func (s *teamStore) RemoveMembers(teamID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	return s.db.
		Where("team_id = ? AND user_id IN ?", teamID, userIDs).
		Delete(&models.TeamMembership{}).Error
}

func (s *teamStore) RemoveMembershipsForUser(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.TeamMembership{}).Error
}

func (s *teamStore) DeleteMemberships(teamID uuid.UUID) error {
	return s.db.Where("team_id = ?", teamID).Delete(&models.TeamMembership{}).Error
}

func (s *teamStore) CountMembers(teamID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.
		Model(&models.TeamMembership{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}
