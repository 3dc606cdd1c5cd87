package middleware

import (
	"net/http"

	"goblog/internal/model"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "blog_session"

	ContextUserKey = "current_user"
)

// CurrentSession resolves the caller for every request. An absent or
// stale cookie just means an anonymous visitor; it is never an error
// here.
func CurrentSession(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if user, err := users.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates the post-mutation routes. Anonymous and
// non-admin callers get the rendered 403 page, never a login
// redirect, so the admin surface is not advertised.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if !user.IsAdmin() {
			c.HTML(http.StatusForbidden, "four_hundred_three.html", gin.H{"User": user})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
