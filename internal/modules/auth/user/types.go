package user

import "errors"

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `form:"username" binding:"required,max=150"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// RegistrationForm is the sign-up form.
type RegistrationForm struct {
	Username  string `form:"username"  binding:"required,max=150"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

// ProfileForm edits the public part of a user.
type ProfileForm struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name"  binding:"max=150"`
	Email     string `form:"email"      binding:"omitempty,email,max=254"`
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrBadCredentials  = errors.New("wrong username or password")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
)
