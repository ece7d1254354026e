package models

import "time"

// User is an identity record. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserView is the public representation of a User.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// RegisterInput is the register payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=60"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
