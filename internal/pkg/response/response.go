package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyViewer is where the auth middleware stores the signed-in user so
// every page can draw the navigation bar.
const ContextKeyViewer = "viewer"

const (
	TemplateNotFound      = "errors/404.html"
	TemplateInternalError = "errors/500.html"
)

// HTML renders a named template. The signed-in user (if any) is exposed to the
// template as .Viewer.
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if viewer, ok := c.Get(ContextKeyViewer); ok {
		data["Viewer"] = viewer
	}
	data["Path"] = c.Request.URL.Path
	c.HTML(code, name, data)
}

// OK renders a page with status 200.
func OK(c *gin.Context, name string, data gin.H) {
	HTML(c, http.StatusOK, name, data)
}

// Redirect sends a 302 to location and stops the handler chain.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, TemplateNotFound, nil)
	c.Abort()
}

// InternalError records err for the request logger and renders the 500 page.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	HTML(c, http.StatusInternalServerError, TemplateInternalError, nil)
	c.Abort()
}

// TooManyRequests is sent when a client exceeds the write rate limit.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.AbortWithStatus(http.StatusTooManyRequests)
}
