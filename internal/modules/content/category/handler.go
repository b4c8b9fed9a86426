package category

import (
	"errors"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/blogicum/core/internal/pkg/urls"
	"github.com/gin-gonic/gin"
)

const templateCategory = "blog/category.html"

// PostLister pages the visible posts of one category.
type PostLister interface {
	ListByCategory(categoryID uint, page int) (pagination.Page[models.PostModel], error)
}

type Handler struct {
	svc   *Service
	posts PostLister
}

func NewHandler(svc *Service, posts PostLister) *Handler {
	return &Handler{svc: svc, posts: posts}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/category/:slug/", h.listPosts)
}

// listPosts GET /category/:slug/
func (h *Handler) listPosts(c *gin.Context) {
	cat, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	page, err := h.posts.ListByCategory(cat.ID, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, templateCategory, gin.H{
		"Category": cat,
		"Page":     page,
		"PageBase": urls.Category(cat.Slug),
	})
}
