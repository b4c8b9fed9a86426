package post

import (
	"errors"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

// ChoiceChecker reports whether a referenced category or location exists.
type ChoiceChecker interface {
	Exists(id uint) (bool, error)
}

// Service handles post business logic.
type Service struct {
	db         *gorm.DB
	categories ChoiceChecker
	locations  ChoiceChecker
	now        func() time.Time
}

func NewService(db *gorm.DB, categories, locations ChoiceChecker) *Service {
	return &Service{db: db, categories: categories, locations: locations, now: time.Now}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Location")
}

// ListPublished pages every publicly visible post, newest first.
func (s *Service) ListPublished(page int) (pagination.Page[models.PostModel], error) {
	tx := s.db.Model(&models.PostModel{}).Scopes(Visible(s.now()))
	return s.paginate(tx, page)
}

// ListByCategory pages the visible posts of one category.
func (s *Service) ListByCategory(categoryID uint, page int) (pagination.Page[models.PostModel], error) {
	tx := s.db.Model(&models.PostModel{}).
		Scopes(Visible(s.now())).
		Where("posts.category_id = ?", categoryID)
	return s.paginate(tx, page)
}

// ListByAuthor pages a profile: every post of the author, drafts and
// scheduled ones included, whoever is looking. Detail pages still apply CanView.
func (s *Service) ListByAuthor(authorID uint, page int) (pagination.Page[models.PostModel], error) {
	tx := s.db.Model(&models.PostModel{}).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC")
	return s.paginate(tx, page)
}

func (s *Service) paginate(tx *gorm.DB, page int) (pagination.Page[models.PostModel], error) {
	var posts []models.PostModel
	result, err := pagination.Paginate(tx, page, &posts, withRelations)
	if err != nil {
		return result, err
	}
	if err := s.annotateCommentCounts(result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// annotateCommentCounts fills CommentCount with one grouped query.
func (s *Service) annotateCommentCounts(posts []models.PostModel) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := s.db.Model(&models.CommentModel{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

// GetByID loads a post with its author, category and location regardless
// of visibility.
func (s *Service) GetByID(id uint) (*models.PostModel, error) {
	var p models.PostModel
	if err := withRelations(s.db).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetForViewer loads a post the viewer is allowed to read. Posts hidden from
// the viewer are reported as ErrNotFound.
func (s *Service) GetForViewer(id, viewerID uint) (*models.PostModel, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !CanView(p, viewerID, s.now()) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) checkChoices(in *PostInput) error {
	ok, err := s.categories.Exists(in.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return &FieldError{Field: "category", Message: "Select a valid choice."}
	}
	if in.LocationID != nil {
		ok, err := s.locations.Exists(*in.LocationID)
		if err != nil {
			return err
		}
		if !ok {
			return &FieldError{Field: "location", Message: "Select a valid choice."}
		}
	}
	return nil
}

// Create stores a new published post by authorID.
func (s *Service) Create(authorID uint, in *PostInput) (*models.PostModel, error) {
	if err := s.checkChoices(in); err != nil {
		return nil, err
	}
	categoryID := in.CategoryID
	p := models.PostModel{
		Title:      in.Title,
		Text:       in.Text,
		PubDate:    in.PubDate,
		AuthorID:   authorID,
		CategoryID: &categoryID,
		LocationID: in.LocationID,
		Image:      in.Image,
		Published:  models.Published{IsPublished: true},
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the edit form to p. It returns the image key that is no
// longer referenced, if any, so the caller can remove the file.
func (s *Service) Update(p *models.PostModel, in *PostInput) (string, error) {
	if err := s.checkChoices(in); err != nil {
		return "", err
	}

	image := p.Image
	switch {
	case in.Image != "":
		image = in.Image
	case in.ClearImage:
		image = ""
	}
	updates := map[string]interface{}{
		"title":       in.Title,
		"text":        in.Text,
		"pub_date":    in.PubDate,
		"category_id": in.CategoryID,
		"location_id": in.LocationID,
		"image":       image,
	}
	if err := s.db.Model(&models.PostModel{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
		return "", err
	}

	orphan := ""
	if p.Image != "" && p.Image != image {
		orphan = p.Image
	}
	categoryID := in.CategoryID
	p.Title, p.Text, p.PubDate = in.Title, in.Text, in.PubDate
	p.CategoryID, p.LocationID, p.Image = &categoryID, in.LocationID, image
	return orphan, nil
}

// Delete removes the post and its comments in one transaction.
func (s *Service) Delete(p *models.PostModel) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.PostModel{}, p.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
