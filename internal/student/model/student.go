// Package model provides domain models and DTOs for student module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents a student entity in the system.
// Matches the students table schema.
type Student struct {
	StudentID string    `gorm:"primaryKey;column:student_id;type:varchar(255)"                json:"student_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"                        json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"           json:"email"`
	RollNo    string    `gorm:"column:roll_no;type:varchar(64);not null;uniqueIndex"          json:"roll_no"`
	TeamID    *string   `gorm:"column:team_id;type:varchar(255);index:idx_students_team_id"   json:"team_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"     json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"     json:"-"`
}

// TableName specifies the table name for GORM.
func (Student) TableName() string {
	return "students"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (s *Student) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

// InTeam reports whether the student currently belongs to a team.
func (s *Student) InTeam() bool {
	return s.TeamID != nil && *s.TeamID != ""
}
