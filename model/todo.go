package model

import "time"

// Todo is a homework item. The owner is always a teacher and never changes
// after creation; the assignee, when set, is always a student. DueDate holds
// the canonical YYYY-MM-DD form produced by the due-date normalizer.
// CompletedAt is non-nil exactly when Completed is true.
type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null;default:''" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`
	DueDate     *string    `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
}
