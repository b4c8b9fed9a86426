package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/modules/auth/user"
	"github.com/blogicum/core/internal/modules/content/category"
	"github.com/blogicum/core/internal/modules/content/comment"
	"github.com/blogicum/core/internal/modules/content/location"
	"github.com/blogicum/core/internal/modules/content/post"
	"github.com/blogicum/core/internal/modules/render"
	"github.com/blogicum/core/internal/modules/storage/image"
	pkgredis "github.com/blogicum/core/internal/pkg/redis"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/blogicum/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs. Redis may be nil, which disables
// rate limiting.
type Deps struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Redis  *pkgredis.Client
	Images image.Store
	Logger *zap.Logger
}

// NewEngine builds the gin engine with every blog route mounted.
func NewEngine(d Deps) (*gin.Engine, error) {
	if d.Config == nil || d.DB == nil || d.Images == nil {
		return nil, errors.New("engine needs config, database and image store")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if err := validation.RegisterGin(); err != nil {
		return nil, err
	}
	tmpl, err := render.Templates(d.Images)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = image.MaxSize + 1<<20
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.InternalError(c, fmt.Errorf("panic: %v", recovered))
	}))
	r.Use(middleware.Logger(d.Logger))

	if local, ok := d.Images.(*image.LocalStore); ok {
		media := r.Group(image.LocalURLPrefix, mediaCORS(d.Config))
		media.Static("/", local.Dir())
	}

	r.Use(middleware.Authenticate(d.DB))
	r.Use(middleware.RateLimit(d.Redis, d.Config.RateLimit))
	r.NoRoute(response.NotFound)
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	registerRoutes(r, d)
	return r, nil
}

func registerRoutes(r *gin.Engine, d Deps) {
	db := d.DB

	categorySvc := category.NewService(db)
	locationSvc := location.NewService(db)
	postSvc := post.NewService(db, categorySvc, locationSvc)
	commentSvc := comment.NewService(db)
	userSvc := user.NewService(db, d.Config.SessionTTL())

	choices := post.Choices{Categories: categorySvc.List, Locations: locationSvc.List}
	post.NewHandler(postSvc, commentSvc, choices, d.Images, d.Logger).RegisterRoutes(r)
	comment.NewHandler(commentSvc, postSvc).RegisterRoutes(r)
	category.NewHandler(categorySvc, postSvc).RegisterRoutes(r)
	user.NewHandler(userSvc, postSvc, d.Config.SecureCookies).RegisterRoutes(r)
}
