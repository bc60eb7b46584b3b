package auth

import (
	"time"

	"github.com/roborush/portal/internal/user"
)

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number,omitempty"`
	RollNumber  string `json:"roll_number,omitempty"`
	Branch      string `json:"branch,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phone_number"`
	RollNumber  string    `json:"roll_number"`
	Branch      string    `json:"branch"`
	CreatedAt   time.Time `json:"created_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		RollNumber:  u.RollNumber,
		Branch:      u.Branch,
		CreatedAt:   u.CreatedAt,
	}
}
