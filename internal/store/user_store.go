package store

import (
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"gorm.io/gorm"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *userStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) FindByEmails(emails []string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userStore) GetWithURLs(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("URLs").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) Save(user *models.User) error {
	return s.db.Omit("URLs", "Memberships").Save(user).Error
}

func (s *userStore) UpdatePassword(id uuid.UUID, passwordHash, salt string) error {
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"salt":          salt,
		"updated_at":    touch(),
	}).Error
}

func (s *userStore) Delete(id uuid.UUID) error {
	return s.db.Delete(&models.User{}, "id = ?", id).Error
}
