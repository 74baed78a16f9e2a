package model

import "time"

// Enrollment binds a student to a plan. A student holds at most one.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	PlanID    uint      `gorm:"not null;index" json:"plan_id"`
	Plan      *Plan     `gorm:"constraint:OnDelete:CASCADE" json:"plan,omitempty"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
