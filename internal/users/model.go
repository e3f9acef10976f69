package users

import "time"

// Account is a registered user. The password hash never leaves the service.
type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupInput is the signup form.
type SignupInput struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,simple_email"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Session is what a successful signup or login hands back to the client.
type Session struct {
	Account Account
	Token   string
}
