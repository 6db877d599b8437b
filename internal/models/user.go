package models

type UserRole string

const (
	UserRoleAdmin UserRole = "Admin"
	UserRoleUser  UserRole = "User"
)

type User struct {
	BaseModel
	FirstName         string           `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName          string           `json:"lastName" gorm:"type:varchar(100);not null"`
	Email             string           `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailConfirmed    bool             `json:"emailConfirmed" gorm:"not null;default:false"`
	EmailConfirmToken *string          `json:"-" gorm:"type:text"`
	PasswordHash      string           `json:"-" gorm:"type:text;not null"`
	Salt              string           `json:"-" gorm:"type:text;not null"`
	Role              UserRole         `json:"role" gorm:"type:varchar(20);not null;default:'User'"`
	IsActive          bool             `json:"isActive" gorm:"not null;default:true"`
	Avatar            *string          `json:"avatar,omitempty" gorm:"type:text"`
	URLs              []URL            `json:"urls" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Memberships       []TeamMembership `json:"-" gorm:"foreignKey:UserID"`
}
