package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askbox/internal/middleware"
	"askbox/internal/models"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// RenderNotFound is the uniform "does not exist" page. It is also used
// when a requester is not allowed to learn whether the content exists.
func RenderNotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// currentUser returns the session user loaded by the middleware, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}
