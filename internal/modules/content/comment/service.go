// Package comment lets signed-in readers discuss posts.
package comment

import (
	"errors"
	"strings"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("comment not found")
	ErrEmptyText = errors.New("comment text is required")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListForPost returns the comments of a post, oldest first.
func (s *Service) ListForPost(postID uint) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// Get loads a comment addressed through its post. A comment that belongs to
// another post is reported as missing.
func (s *Service) Get(postID, commentID uint) (*models.CommentModel, error) {
	var c models.CommentModel
	err := s.db.Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Create(postID, authorID uint, text string) (*models.CommentModel, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	c := models.CommentModel{PostID: postID, AuthorID: authorID, Text: text}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the text only; post and author never change.
func (s *Service) Update(c *models.CommentModel, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if err := s.db.Model(&models.CommentModel{}).Where("id = ?", c.ID).Update("text", text).Error; err != nil {
		return err
	}
	c.Text = text
	return nil
}

func (s *Service) Delete(c *models.CommentModel) error {
	res := s.db.Delete(&models.CommentModel{}, c.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
