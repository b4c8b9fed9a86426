package location

import (
	"errors"
	"strings"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("location not found")
	ErrInvalidName = errors.New("location name must be 1-256 characters")
)

const maxNameLength = 256

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every location for form choices.
func (s *Service) List() ([]models.LocationModel, error) {
	var locs []models.LocationModel
	return locs, s.db.Order("name ASC").Find(&locs).Error
}

func (s *Service) GetByID(id uint) (*models.LocationModel, error) {
	var loc models.LocationModel
	if err := s.db.First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (s *Service) Exists(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.LocationModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Service) Create(name string, published bool) (*models.LocationModel, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, ErrInvalidName
	}
	loc := models.LocationModel{Name: name, Published: models.Published{IsPublished: published}}
	return &loc, s.db.Create(&loc).Error
}

// Delete removes a location and detaches it from posts.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.LocationModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
