package category

import (
	"errors"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/validation"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrSlugTaken = errors.New("category with this slug already exists")
)

const mysqlDuplicateEntry = 1062

type CreateCategoryDTO struct {
	Title       string `yaml:"title"       validate:"required,max=256"`
	Description string `yaml:"description" validate:"required"`
	Slug        string `yaml:"slug"        validate:"required,max=64,slug"`
	IsPublished bool   `yaml:"is_published"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every category for form choices, published or not.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("title ASC").Find(&cats).Error
}

func (s *Service) GetByID(id uint) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// GetPublishedBySlug finds a category readers may browse. Unpublished
// categories are reported as missing.
func (s *Service) GetPublishedBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	cat := models.CategoryModel{
		Title:       dto.Title,
		Description: dto.Description,
		Slug:        dto.Slug,
		Published:   models.Published{IsPublished: dto.IsPublished},
	}
	if err := s.db.Create(&cat).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &cat, nil
}

// SetPublished shows or hides a category and, with it, all of its posts.
func (s *Service) SetPublished(slug string, published bool) error {
	res := s.db.Model(&models.CategoryModel{}).Where("slug = ?", slug).Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. Its posts stay, without a category.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.CategoryModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
