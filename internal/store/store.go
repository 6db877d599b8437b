// Package store is the persistence layer. One interface per aggregate, backed
// by gorm; services compose them and never touch gorm directly.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/pkg/utils"
	"gorm.io/gorm"
)

type UserStore interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByEmails(emails []string) ([]models.User, error)
	// GetWithURLs loads the user with its short links eager-loaded.
	GetWithURLs(id uuid.UUID) (*models.User, error)
	Save(user *models.User) error
	UpdatePassword(id uuid.UUID, passwordHash, salt string) error
	Delete(id uuid.UUID) error
}

type TeamStore interface {
	// Create persists the team and its sole initial member in one step.
	Create(team *models.Team, ownerID uuid.UUID) error
	FindByName(name string) (*models.Team, error)
	// GetByIDAndUserID is the membership-scoped lookup: it returns the team,
	// memberships eager-loaded, only when userID is among its members.
	// Absence of a row is indistinguishable from nonexistence.
	GetByIDAndUserID(teamID, userID uuid.UUID) (*models.Team, error)
	ListForUser(userID uuid.UUID) ([]models.Team, error)
	Save(team *models.Team) error
	Delete(teamID uuid.UUID) error
	AddMember(teamID, userID uuid.UUID) error
	RemoveMembers(teamID uuid.UUID, userIDs []uuid.UUID) error
	RemoveMembershipsForUser(userID uuid.UUID) error
	DeleteMemberships(teamID uuid.UUID) error
	CountMembers(teamID uuid.UUID) (int64, error)
}

type URLStore interface {
	Create(url *models.URL) error
	FindByID(id uuid.UUID) (*models.URL, error)
	FindByCode(code string) (*models.URL, error)
	ListByUser(userID uuid.UUID, p utils.Pagination) ([]models.URL, int64, error)
	Save(url *models.URL) error
	DeleteByTeam(teamID uuid.UUID) error
	// DetachUser clears the owner reference on every link the user owns.
	DetachUser(userID uuid.UUID) error
}

// Stores bundles the per-aggregate stores over one gorm handle so services
// can run multi-store operations in a single transaction.
type Stores struct {
	Users UserStore
	Teams TeamStore
	URLs  URLStore

	db *gorm.DB
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users: &userStore{db: db},
		Teams: &teamStore{db: db},
		URLs:  &urlStore{db: db},
		db:    db,
	}
}

// Transaction runs fn against transaction-scoped stores. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Stores) Transaction(fn func(tx *Stores) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func touch() *time.Time {
	now := time.Now()
	return &now
}
