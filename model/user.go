package model

import "time"

// Role is the closed set of user roles. There is no role-change operation;
// a user keeps the role it was created with.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// User represents a registered teacher or student.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`

	// Relationships. Deleting a teacher removes their todos; deleting a
	// student unassigns the todos that pointed at them.
	OwnedTodos    []Todo `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	AssignedTodos []Todo `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"-"`
}
