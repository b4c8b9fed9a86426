package models

import "time"

type PostModel struct {
	ID         uint           `json:"id"          gorm:"primaryKey"`
	Title      string         `json:"title"       gorm:"size:256;not null"`
	Text       string         `json:"text"        gorm:"type:longtext;not null"`
	PubDate    time.Time      `json:"pub_date"    gorm:"index;not null"`
	AuthorID   uint           `json:"author_id"   gorm:"index;not null"`
	Author     *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	LocationID *uint          `json:"location_id" gorm:"index"`
	Location   *LocationModel `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	CategoryID *uint          `json:"category_id" gorm:"index"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Image      string         `json:"image"       gorm:"size:255"`
	Published

	// CommentCount is filled in by listings and never stored.
	CommentCount int64 `json:"comment_count" gorm:"-"`
}

func (PostModel) TableName() string { return "posts" }

// OwnerID is the only user allowed to edit or delete the post.
func (p PostModel) OwnerID() uint { return p.AuthorID }
