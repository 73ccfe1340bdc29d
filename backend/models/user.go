package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Age          *int      `json:"age"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Progress          *LearningProgress `gorm:"constraint:OnDelete:CASCADE" json:"progress,omitempty"`
	GestureRecords    []GestureRecord   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	HealthMetrics     []HealthMetric    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuizResults       []QuizResult      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LessonCompletions []UserLesson      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// PublicUser is the part of a user that is safe to return to clients.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age, Role: u.Role}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Age      *int   `json:"age" validate:"omitempty,min=0,max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=150"`
	OldPassword string  `json:"old_password"`
	NewPassword string  `json:"new_password" validate:"omitempty,min=6"`
}
