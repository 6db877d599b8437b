package models

import "github.com/google/uuid"

// TeamMembership is the user/team join row. Membership carries no role:
// any member may administer the team.
type TeamMembership struct {
	BaseModel
	TeamID uuid.UUID `json:"teamID" gorm:"type:uuid;not null;index;uniqueIndex:idx_team_user"`
	UserID uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_team_user"`
	Team   Team      `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	User   User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
