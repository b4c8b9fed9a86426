package middleware

import (
	"github.com/blogicum/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// ContextKeyResource holds the resource loaded by RequireOwner.
const ContextKeyResource = "owned_resource"

// Owned is anything that records which user may change it.
type Owned interface {
	OwnerID() uint
}

// Loader fetches the resource addressed by the request. found=false means
// the resource does not exist.
type Loader[T Owned] func(c *gin.Context) (resource T, found bool, err error)

// RequireOwner guards a mutation. It loads the resource (404 when missing),
// then lets the request through only when the signed-in user owns it.
// Anonymous users and other users are redirected to deny(resource) and nothing
// is changed. The loaded resource is available to the handler via Resource.
func RequireOwner[T Owned](load Loader[T], deny func(resource T) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, found, err := load(c)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if !found {
			response.NotFound(c)
			return
		}
		if !IsOwner(CurrentUserID(c), resource) {
			response.Redirect(c, deny(resource))
			return
		}
		c.Set(ContextKeyResource, resource)
		c.Next()
	}
}

// IsOwner reports whether viewerID may change resource. Anonymous viewers
// (id 0) never own anything.
func IsOwner(viewerID uint, resource Owned) bool {
	return viewerID != 0 && resource.OwnerID() == viewerID
}

// Resource returns the value stored by RequireOwner.
func Resource[T any](c *gin.Context) (T, bool) {
	v, ok := c.Get(ContextKeyResource)
	if !ok {
		var zero T
		return zero, false
	}
	r, ok := v.(T)
	return r, ok
}
