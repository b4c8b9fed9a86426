package post

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/storage/image"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/blogicum/core/internal/pkg/urls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	templateIndex  = "blog/index.html"
	templateDetail = "blog/detail.html"
	templateForm   = "blog/create.html"
)

// CommentLister loads the comments shown under a post.
type CommentLister interface {
	ListForPost(postID uint) ([]models.CommentModel, error)
}

// Choices lists what the post form offers in its select boxes.
type Choices struct {
	Categories func() ([]models.CategoryModel, error)
	Locations  func() ([]models.LocationModel, error)
}

type Handler struct {
	svc      *Service
	comments CommentLister
	choices  Choices
	images   image.Store
	logger   *zap.Logger
}

func NewHandler(svc *Service, comments CommentLister, choices Choices, images image.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, comments: comments, choices: choices, images: images, logger: logger}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
	r.GET("/posts/create/", middleware.RequireAuth(), h.createForm)
	r.POST("/posts/create/", middleware.RequireAuth(), h.create)
	r.GET("/posts/:id/", h.detail)

	owner := middleware.RequireOwner[*models.PostModel](h.load, backToPost)
	r.GET("/posts/:id/edit/", owner, h.editForm)
	r.POST("/posts/:id/edit/", owner, h.edit)
	r.GET("/posts/:id/delete/", owner, h.deleteForm)
	r.POST("/posts/:id/delete/", owner, h.delete)
}

func (h *Handler) load(c *gin.Context) (*models.PostModel, bool, error) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		return nil, false, nil
	}
	p, err := h.svc.GetByID(id)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func backToPost(p *models.PostModel) string { return urls.PostDetail(p.ID) }

// ParseID reads a positive numeric path parameter.
func ParseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// index GET /
func (h *Handler) index(c *gin.Context) {
	page, err := h.svc.ListPublished(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, templateIndex, gin.H{"Page": page, "PageBase": urls.Index})
}

// detail GET /posts/:id/
func (h *Handler) detail(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c)
		return
	}
	p, err := h.svc.GetForViewer(id, middleware.CurrentUserID(c))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	comments, err := h.comments.ListForPost(p.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, templateDetail, gin.H{
		"Post":     p,
		"Comments": comments,
		"IsOwner":  middleware.IsOwner(middleware.CurrentUserID(c), p),
		"Errors":   map[string]string{},
	})
}

// createForm GET /posts/create/
func (h *Handler) createForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "create", nil, NewForm(h.svc.now()), nil)
}

// create POST /posts/create/
func (h *Handler) create(c *gin.Context) {
	form, in, errs := h.bind(c)
	if len(errs) > 0 {
		h.renderForm(c, http.StatusOK, "create", nil, form, errs)
		return
	}

	if err := h.attachImage(c, in); err != nil {
		h.renderImageError(c, "create", nil, form, err)
		return
	}
	_, err := h.svc.Create(middleware.CurrentUserID(c), in)
	if err != nil {
		h.discardImage(c, in.Image)
		var fe *FieldError
		if errors.As(err, &fe) {
			h.renderForm(c, http.StatusOK, "create", nil, form, map[string]string{fe.Field: fe.Message})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, urls.Profile(middleware.CurrentUser(c).Username))
}

// editForm GET /posts/:id/edit/
func (h *Handler) editForm(c *gin.Context) {
	p, _ := middleware.Resource[*models.PostModel](c)
	h.renderForm(c, http.StatusOK, "edit", p, FormFrom(p), nil)
}

// edit POST /posts/:id/edit/
func (h *Handler) edit(c *gin.Context) {
	p, _ := middleware.Resource[*models.PostModel](c)
	form, in, errs := h.bind(c)
	if len(errs) > 0 {
		h.renderForm(c, http.StatusOK, "edit", p, form, errs)
		return
	}

	if err := h.attachImage(c, in); err != nil {
		h.renderImageError(c, "edit", p, form, err)
		return
	}
	orphan, err := h.svc.Update(p, in)
	if err != nil {
		h.discardImage(c, in.Image)
		var fe *FieldError
		if errors.As(err, &fe) {
			h.renderForm(c, http.StatusOK, "edit", p, form, map[string]string{fe.Field: fe.Message})
			return
		}
		response.InternalError(c, err)
		return
	}
	h.discardImage(c, orphan)
	response.Redirect(c, urls.PostDetail(p.ID))
}

// deleteForm GET /posts/:id/delete/
func (h *Handler) deleteForm(c *gin.Context) {
	p, _ := middleware.Resource[*models.PostModel](c)
	h.renderForm(c, http.StatusOK, "delete", p, FormFrom(p), nil)
}

// delete POST /posts/:id/delete/
func (h *Handler) delete(c *gin.Context) {
	p, _ := middleware.Resource[*models.PostModel](c)
	if err := h.svc.Delete(p); err != nil && !errors.Is(err, ErrNotFound) {
		response.InternalError(c, err)
		return
	}
	h.discardImage(c, p.Image)
	response.Redirect(c, urls.Profile(middleware.CurrentUser(c).Username))
}

func (h *Handler) bind(c *gin.Context) (PostForm, *PostInput, map[string]string) {
	var form PostForm
	bindErr := c.ShouldBind(&form)
	in, cleanErrs := form.Clean(h.svc.now())
	if bindErr != nil || len(cleanErrs) > 0 {
		return form, nil, bindErrors(bindErr, cleanErrs)
	}
	return form, in, nil
}

// attachImage stores the uploaded image, if any, and records its key on in.
func (h *Handler) attachImage(c *gin.Context, in *PostInput) error {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	if err != nil {
		return err
	}
	if fh.Size > image.MaxSize {
		return image.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, image.MaxSize+1))
	if err != nil {
		return err
	}

	key, err := h.images.Save(c.Request.Context(), fh.Filename, data)
	if err != nil {
		return err
	}
	in.Image = key
	return nil
}

func (h *Handler) discardImage(c *gin.Context, key string) {
	if key == "" {
		return
	}
	if err := h.images.Delete(c.Request.Context(), key); err != nil {
		h.logger.Warn("image delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (h *Handler) renderImageError(c *gin.Context, mode string, p *models.PostModel, form PostForm, err error) {
	if errors.Is(err, image.ErrUnsupportedType) || errors.Is(err, image.ErrTooLarge) {
		h.renderForm(c, http.StatusOK, mode, p, form, map[string]string{"image": err.Error()})
		return
	}
	response.InternalError(c, fmt.Errorf("store image: %w", err))
}

func (h *Handler) renderForm(c *gin.Context, code int, mode string, p *models.PostModel, form PostForm, errs map[string]string) {
	categories, err := h.choices.Categories()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	locations, err := h.choices.Locations()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if errs == nil {
		errs = map[string]string{}
	}
	response.HTML(c, code, templateForm, gin.H{
		"Mode":       mode,
		"Post":       p,
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
		"Locations":  locations,
	})
}
