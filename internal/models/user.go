package models

import "time"

// UserModel is a registered author.
type UserModel struct {
	ID        uint       `json:"id"         gorm:"primaryKey"`
	Username  string     `json:"username"   gorm:"size:150;uniqueIndex;not null"`
	FirstName string     `json:"first_name" gorm:"size:150"`
	LastName  string     `json:"last_name"  gorm:"size:150"`
	Email     string     `json:"email"      gorm:"size:254"`
	Password  string     `json:"-"          gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

// FullName joins first and last name, falling back to the username.
func (u *UserModel) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
