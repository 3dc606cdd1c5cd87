package handler

import (
	"net/http"

	"goblog/internal/middleware"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorCookieName identifies a browser for flash delivery; it is
	// set lazily the first time a flash is stored.
	VisitorCookieName = "blog_visitor"

	visitorCookieMaxAge = 30 * 24 * 60 * 60
	sessionCookieMaxAge = 24 * 60 * 60

	ctxVisitorKey = "visitor_id"
)

// Renderer decorates every page render with the current user and any
// pending flash messages.
type Renderer struct {
	flashes service.FlashStore
}

func NewRenderer(flashes service.FlashStore) *Renderer {
	return &Renderer{flashes: flashes}
}

func (rd *Renderer) HTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentUser(c)
	data["Flashes"] = rd.popFlashes(c)
	c.HTML(status, page, data)
}

// Flash stores a read-once notice for this visitor; it surfaces on the
// next rendered response.
func (rd *Renderer) Flash(c *gin.Context, message string) {
	id := rd.visitorID(c, true)
	if id == "" {
		return
	}
	if err := rd.flashes.Add(c.Request.Context(), id, message); err != nil {
		// A lost flash degrades the UX, not the operation.
		return
	}
}

// ErrorPage renders the generic error page used for 404/405/500.
func (rd *Renderer) ErrorPage(c *gin.Context, status int, description string) {
	rd.HTML(c, status, "error.html", gin.H{
		"Code":        status,
		"Name":        http.StatusText(status),
		"Description": description,
	})
}

func (rd *Renderer) ServerError(c *gin.Context, err error) {
	desc := "The server encountered an internal error and was unable to complete your request."
	if err != nil {
		desc = err.Error()
	}
	rd.ErrorPage(c, http.StatusInternalServerError, desc)
}

func (rd *Renderer) popFlashes(c *gin.Context) []string {
	id := rd.visitorID(c, false)
	if id == "" {
		return nil
	}
	msgs, err := rd.flashes.PopAll(c.Request.Context(), id)
	if err != nil {
		return nil
	}
	return msgs
}

// visitorID reads the visitor cookie, minting one when create is set.
// The freshly minted id is kept on the context so a flash stored and
// rendered within the same request still finds its messages.
func (rd *Renderer) visitorID(c *gin.Context, create bool) string {
	if v, ok := c.Get(ctxVisitorKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	if id, err := c.Cookie(VisitorCookieName); err == nil && id != "" {
		c.Set(ctxVisitorKey, id)
		return id
	}
	if !create {
		return ""
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(VisitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
	c.Set(ctxVisitorKey, id)
	return id
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}
