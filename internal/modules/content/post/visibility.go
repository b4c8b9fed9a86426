package post

import (
	"time"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

// IsPubliclyVisible reports whether anyone may see p at now: the post and
// its category are published and the publication date has come. A post
// without a category is never public.
func IsPubliclyVisible(p *models.PostModel, now time.Time) bool {
	if p == nil || !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	return p.Category != nil && p.Category.IsPublished
}

// CanView is IsPubliclyVisible with the author exception: the author always
// sees their own post. viewerID 0 is an anonymous visitor.
func CanView(p *models.PostModel, viewerID uint, now time.Time) bool {
	if p == nil {
		return false
	}
	if viewerID != 0 && p.AuthorID == viewerID {
		return true
	}
	return IsPubliclyVisible(p, now)
}

// Visible restricts a posts query to publicly visible rows, newest first.
func Visible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?", true, true, now).
			Order("posts.created_at DESC")
	}
}
