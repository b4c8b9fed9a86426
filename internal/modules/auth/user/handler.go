package user

import (
	"errors"
	"net/http"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/blogicum/core/internal/pkg/urls"
	"github.com/blogicum/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

const (
	templateLogin        = "registration/login.html"
	templateRegistration = "registration/registration_form.html"
	templateProfile      = "blog/profile.html"
	templateProfileEdit  = "blog/user.html"
)

// PostLister pages the posts shown on a profile.
type PostLister interface {
	ListByAuthor(authorID uint, page int) (pagination.Page[models.PostModel], error)
}

type Handler struct {
	svc          *Service
	posts        PostLister
	secureCookie bool
}

func NewHandler(svc *Service, posts PostLister, secureCookie bool) *Handler {
	return &Handler{svc: svc, posts: posts, secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.GET("/login/", h.loginForm)
	auth.POST("/login/", h.login)
	auth.POST("/logout/", h.logout)
	auth.GET("/registration/", h.registrationForm)
	auth.POST("/registration/", h.register)

	toIndex := middleware.RequireAuthOr(func(*gin.Context) string { return urls.Index })
	r.GET("/profile/edit/", toIndex, h.editForm)
	r.POST("/profile/edit/", toIndex, h.edit)
	r.GET("/profile/:username/", h.profile)
}

// loginForm GET /auth/login/
func (h *Handler) loginForm(c *gin.Context) {
	h.renderLogin(c, LoginForm{Next: c.Query("next")}, nil)
}

// login POST /auth/login/
func (h *Handler) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form, validation.FieldErrors(err))
		return
	}
	token, _, err := h.svc.Login(form.Username, form.Password, c.ClientIP(), c.Request.UserAgent())
	if errors.Is(err, ErrBadCredentials) {
		h.renderLogin(c, form, map[string]string{
			validation.NonFieldKey: "Please enter a correct username and password. Note that both fields may be case-sensitive.",
		})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, h.svc.SessionTTL(), h.secureCookie)
	next := safeNext(form.Next)
	if next == "" {
		next = urls.Index
	}
	response.Redirect(c, next)
}

// logout POST /auth/logout/
func (h *Handler) logout(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
	response.Redirect(c, urls.Index)
}

// registrationForm GET /auth/registration/
func (h *Handler) registrationForm(c *gin.Context) {
	h.renderRegistration(c, RegistrationForm{}, nil)
}

// register POST /auth/registration/
func (h *Handler) register(c *gin.Context) {
	var form RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegistration(c, form, validation.FieldErrors(err))
		return
	}
	_, err := h.svc.Register(form.Username, form.Password1)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		h.renderRegistration(c, form, map[string]string{"username": "A user with that username already exists."})
		return
	case errors.Is(err, ErrInvalidUsername):
		h.renderRegistration(c, form, map[string]string{
			"username": "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.",
		})
		return
	case err != nil:
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, urls.Login)
}

// profile GET /profile/:username/
func (h *Handler) profile(c *gin.Context) {
	u, err := h.svc.GetByUsername(c.Param("username"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	page, err := h.posts.ListByAuthor(u.ID, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, templateProfile, gin.H{
		"Profile":  u,
		"Page":     page,
		"PageBase": urls.Profile(u.Username),
		"CanEdit":  CanEditProfile(u.Username, middleware.CurrentUser(c)),
	})
}

// editForm GET /profile/edit/
func (h *Handler) editForm(c *gin.Context) {
	u := middleware.CurrentUser(c)
	h.renderProfileEdit(c, profileFormFrom(u), nil)
}

// edit POST /profile/edit/
func (h *Handler) edit(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProfileEdit(c, form, validation.FieldErrors(err))
		return
	}
	if err := h.svc.UpdateProfile(u, &form); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, urls.Profile(u.Username))
}

func (h *Handler) renderLogin(c *gin.Context, form LoginForm, errs map[string]string) {
	form.Password = ""
	response.HTML(c, http.StatusOK, templateLogin, gin.H{"Form": form, "Errors": orEmpty(errs)})
}

func (h *Handler) renderRegistration(c *gin.Context, form RegistrationForm, errs map[string]string) {
	form.Password1, form.Password2 = "", ""
	response.HTML(c, http.StatusOK, templateRegistration, gin.H{"Form": form, "Errors": orEmpty(errs)})
}

func (h *Handler) renderProfileEdit(c *gin.Context, form ProfileForm, errs map[string]string) {
	response.HTML(c, http.StatusOK, templateProfileEdit, gin.H{"Form": form, "Errors": orEmpty(errs)})
}

func orEmpty(errs map[string]string) map[string]string {
	if errs == nil {
		return map[string]string{}
	}
	return errs
}
