package store

import (
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/pkg/utils"
	"gorm.io/gorm"
)

type urlStore struct {
	db *gorm.DB
}

func (s *urlStore) Create(url *models.URL) error {
	return s.db.Create(url).Error
}

func (s *urlStore) FindByID(id uuid.UUID) (*models.URL, error) {
	var url models.URL
	if err := s.db.First(&url, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *urlStore) FindByCode(code string) (*models.URL, error) {
	var url models.URL
	if err := s.db.First(&url, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *urlStore) ListByUser(userID uuid.UUID, p utils.Pagination) ([]models.URL, int64, error) {
	query := s.db.Model(&models.URL{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var urls []models.URL
	err := utils.ApplyPagination(query.Order("created_at DESC"), p).Find(&urls).Error
	if err != nil {
		return nil, 0, err
	}
	return urls, total, nil
}

func (s *urlStore) Save(url *models.URL) error {
	return s.db.Save(url).Error
}

func (s *urlStore) DeleteByTeam(teamID uuid.UUID) error {
	return s.db.Where("team_id = ?", teamID).Delete(&models.URL{}).Error
}

func (s *urlStore) DetachUser(userID uuid.UUID) error {
	return s.db.
		Model(&models.URL{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
}
