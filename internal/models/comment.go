package models

import "time"

// CommentModel is a reader's reply to a post, listed oldest first.
type CommentModel struct {
	ID        uint       `json:"id"         gorm:"primaryKey"`
	PostID    uint       `json:"post_id"    gorm:"index;not null"`
	Post      *PostModel `json:"-"          gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  uint       `json:"author_id"  gorm:"index;not null"`
	Author    *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string     `json:"text"       gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

func (CommentModel) TableName() string { return "comments" }

func (c CommentModel) OwnerID() uint { return c.AuthorID }
