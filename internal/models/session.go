package models

import "time"

// UserSession backs a signed-in browser cookie.
type UserSession struct {
	UUIDBase
	UserID    uint       `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"         gorm:"size:64"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
