package model

import "time"

// HelpOrder is a question a student asked the gym staff. AnswerAt is set
// once, when the order gets answered.
type HelpOrder struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"not null;index" json:"student_id"`
	Student   *Student   `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Question  string     `gorm:"not null" json:"question"`
	Answer    *string    `json:"answer"`
	AnswerAt  *time.Time `gorm:"index" json:"answer_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (h *HelpOrder) Answered() bool {
	return h.AnswerAt != nil
}
