package comment

import (
	"errors"
	"net/http"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/content/post"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/blogicum/core/internal/pkg/urls"
	"github.com/blogicum/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

const (
	templateComment = "blog/comment.html"
	templateDetail  = "blog/detail.html"
)

// CommentForm is the single-field comment form.
type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

// PostReader loads the post a comment is attached to, honouring visibility.
type PostReader interface {
	GetForViewer(id, viewerID uint) (*models.PostModel, error)
}

type Handler struct {
	svc   *Service
	posts PostReader
}

func NewHandler(svc *Service, posts PostReader) *Handler {
	return &Handler{svc: svc, posts: posts}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/posts/:id/comment/", middleware.RequireAuthOr(postFromPath), h.add)

	owner := middleware.RequireOwner[*models.CommentModel](h.load, backToPost)
	r.GET("/posts/:id/edit_comment/:comment_id/", owner, h.editForm)
	r.POST("/posts/:id/edit_comment/:comment_id/", owner, h.edit)
	r.GET("/posts/:id/delete_comment/:comment_id/", owner, h.deleteForm)
	r.POST("/posts/:id/delete_comment/:comment_id/", owner, h.delete)
}

// postFromPath sends anonymous commenters back to the post.
func postFromPath(c *gin.Context) string {
	id, ok := post.ParseID(c.Param("id"))
	if !ok {
		return urls.Index
	}
	return urls.PostDetail(id)
}

func backToPost(cm *models.CommentModel) string { return urls.PostDetail(cm.PostID) }

func (h *Handler) load(c *gin.Context) (*models.CommentModel, bool, error) {
	postID, ok := post.ParseID(c.Param("id"))
	if !ok {
		return nil, false, nil
	}
	commentID, ok := post.ParseID(c.Param("comment_id"))
	if !ok {
		return nil, false, nil
	}
	cm, err := h.svc.Get(postID, commentID)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cm, true, nil
}

// add POST /posts/:id/comment/
func (h *Handler) add(c *gin.Context) {
	id, ok := post.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c)
		return
	}
	viewerID := middleware.CurrentUserID(c)
	p, err := h.posts.GetForViewer(id, viewerID)
	if errors.Is(err, post.ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var form CommentForm
	bindErr := c.ShouldBind(&form)
	if bindErr == nil {
		_, err = h.svc.Create(p.ID, viewerID, form.Text)
		if err == nil {
			response.Redirect(c, urls.PostComments(p.ID))
			return
		}
		if !errors.Is(err, ErrEmptyText) {
			response.InternalError(c, err)
			return
		}
	}

	comments, err := h.svc.ListForPost(p.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, templateDetail, gin.H{
		"Post":     p,
		"Comments": comments,
		"IsOwner":  middleware.IsOwner(viewerID, p),
		"Form":     form,
		"Errors":   formErrors(bindErr),
	})
}

// editForm GET /posts/:id/edit_comment/:comment_id/
func (h *Handler) editForm(c *gin.Context) {
	cm, _ := middleware.Resource[*models.CommentModel](c)
	h.render(c, "edit", cm, CommentForm{Text: cm.Text}, nil)
}

// edit POST /posts/:id/edit_comment/:comment_id/
func (h *Handler) edit(c *gin.Context) {
	cm, _ := middleware.Resource[*models.CommentModel](c)
	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, "edit", cm, form, formErrors(err))
		return
	}
	if err := h.svc.Update(cm, form.Text); err != nil {
		if errors.Is(err, ErrEmptyText) {
			h.render(c, "edit", cm, form, formErrors(err))
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, urls.PostComments(cm.PostID))
}

// deleteForm GET /posts/:id/delete_comment/:comment_id/
func (h *Handler) deleteForm(c *gin.Context) {
	cm, _ := middleware.Resource[*models.CommentModel](c)
	h.render(c, "delete", cm, CommentForm{Text: cm.Text}, nil)
}

// delete POST /posts/:id/delete_comment/:comment_id/
func (h *Handler) delete(c *gin.Context) {
	cm, _ := middleware.Resource[*models.CommentModel](c)
	if err := h.svc.Delete(cm); err != nil && !errors.Is(err, ErrNotFound) {
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, urls.PostComments(cm.PostID))
}

func (h *Handler) render(c *gin.Context, mode string, cm *models.CommentModel, form CommentForm, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	response.HTML(c, http.StatusOK, templateComment, gin.H{
		"Mode":    mode,
		"Comment": cm,
		"Form":    form,
		"Errors":  errs,
	})
}

func formErrors(err error) map[string]string {
	if errors.Is(err, ErrEmptyText) {
		return map[string]string{"text": "This field is required."}
	}
	if errs := validation.FieldErrors(err); errs != nil {
		return errs
	}
	return map[string]string{}
}
