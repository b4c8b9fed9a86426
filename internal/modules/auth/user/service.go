package user

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/core/internal/models"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	mysqldriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db         *gorm.DB
	sessionTTL time.Duration
	cost       int
}

func NewService(db *gorm.DB, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = sessionpkg.DefaultTTL
	}
	return &Service{db: db, sessionTTL: sessionTTL, cost: bcrypt.DefaultCost}
}

// SessionTTL is how long a login lasts.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

func (s *Service) GetByUsername(username string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(username, password string) (*models.UserModel, error) {
	username = strings.TrimSpace(username)
	if !validUsername(username) {
		return nil, ErrInvalidUsername
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	u := models.UserModel{Username: username, Password: string(hash)}
	if err := s.db.Create(&u).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login checks the password and opens a session. Unknown users and wrong
// passwords both yield ErrBadCredentials.
func (s *Service) Login(username, password, ip, ua string) (string, *models.UserModel, error) {
	u, err := s.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	now := time.Now()
	if err := s.db.Model(&models.UserModel{}).Where("id = ?", u.ID).Update("last_login", now).Error; err != nil {
		return "", nil, err
	}
	u.LastLogin = &now

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Logout revokes the session; an empty session id is a no-op.
func (s *Service) Logout(userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return sessionpkg.Revoke(s.db, userID, sessionID)
}

func (s *Service) UpdateProfile(u *models.UserModel, form *ProfileForm) error {
	updates := map[string]interface{}{
		"first_name": strings.TrimSpace(form.FirstName),
		"last_name":  strings.TrimSpace(form.LastName),
		"email":      strings.TrimSpace(form.Email),
	}
	if err := s.db.Model(&models.UserModel{}).Where("id = ?", u.ID).Updates(updates).Error; err != nil {
		return err
	}
	u.FirstName = updates["first_name"].(string)
	u.LastName = updates["last_name"].(string)
	u.Email = updates["email"].(string)
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
