package models

// Team name uniqueness is enforced by the service layer at creation time
// only; there is deliberately no unique index on the column.
type Team struct {
	BaseModel
	Name        string           `json:"name" gorm:"type:varchar(100);not null"`
	Icon        *string          `json:"icon,omitempty" gorm:"type:text"`
	Memberships []TeamMembership `json:"-" gorm:"foreignKey:TeamID"`
	URLs        []URL            `json:"urls,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}
