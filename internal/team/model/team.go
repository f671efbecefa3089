package model

import (
	"time"

	"gorm.io/gorm"
)

// TeamSizeLimit is the maximum number of members a team may have,
// team lead included.
const TeamSizeLimit = 4

// Team represents a team entity in the system.
// Matches the teams table schema.
type Team struct {
	TeamID    string    `gorm:"primaryKey;column:team_id;type:varchar(255)"               json:"team_id"`
	TeamName  string    `gorm:"column:team_name;type:varchar(255);not null;uniqueIndex"   json:"team_name"`
	LeadID    string    `gorm:"column:lead_id;type:varchar(255);not null;index"           json:"lead_id"`
	MentorID  *string   `gorm:"column:mentor_id;type:varchar(255)"                        json:"mentor_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
