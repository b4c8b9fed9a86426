package testdb

import (
	"testing"
	"time"

	"github.com/blogicum/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "correct-horse"

func mustCreate(t testing.TB, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// User creates an author with the fixture password.
func User(t testing.TB, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.UserModel{Username: username, Password: string(hash)}
	mustCreate(t, db, u)
	return u
}

// Category creates a category with the given slug and publication flag.
func Category(t testing.TB, db *gorm.DB, slug string, published bool) *models.CategoryModel {
	t.Helper()
	c := &models.CategoryModel{
		Title:       "Category " + slug,
		Description: "About " + slug,
		Slug:        slug,
		Published:   models.Published{IsPublished: published},
	}
	mustCreate(t, db, c)
	return c
}

// Location creates a published location.
func Location(t testing.TB, db *gorm.DB, name string) *models.LocationModel {
	t.Helper()
	l := &models.LocationModel{Name: name, Published: models.Published{IsPublished: true}}
	mustCreate(t, db, l)
	return l
}

// PostOption tweaks a fixture post before it is stored.
type PostOption func(*models.PostModel)

func Unpublished() PostOption {
	return func(p *models.PostModel) { p.IsPublished = false }
}

func PubDate(at time.Time) PostOption {
	return func(p *models.PostModel) { p.PubDate = at }
}

func CreatedAt(at time.Time) PostOption {
	return func(p *models.PostModel) { p.CreatedAt = at }
}

func WithoutCategory() PostOption {
	return func(p *models.PostModel) { p.CategoryID = nil }
}

// Post creates a published post dated an hour ago.
func Post(t testing.TB, db *gorm.DB, author *models.UserModel, category *models.CategoryModel, title string, opts ...PostOption) *models.PostModel {
	t.Helper()
	p := &models.PostModel{
		Title:     title,
		Text:      "Text of " + title,
		PubDate:   time.Now().Add(-time.Hour),
		AuthorID:  author.ID,
		Published: models.Published{IsPublished: true},
	}
	if category != nil {
		p.CategoryID = &category.ID
	}
	for _, opt := range opts {
		opt(p)
	}
	mustCreate(t, db, p)
	return p
}

// Comment creates a comment by author on post.
func Comment(t testing.TB, db *gorm.DB, post *models.PostModel, author *models.UserModel, text string) *models.CommentModel {
	t.Helper()
	c := &models.CommentModel{PostID: post.ID, AuthorID: author.ID, Text: text}
	mustCreate(t, db, c)
	return c
}
