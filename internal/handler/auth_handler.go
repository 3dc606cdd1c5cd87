package handler

import (
	"errors"
	"net/http"

	"goblog/internal/middleware"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	rd    *Renderer
	users *service.UserService
}

func NewAuthHandler(rd *Renderer, users *service.UserService) *AuthHandler {
	return &AuthHandler{rd: rd, users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.rd.HTML(c, http.StatusOK, "register.html", gin.H{"FormError": "Please fill in all fields with a valid email."})
		return
	}

	user, err := h.users.Register(form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.rd.Flash(c, "You have already signed up with that email, log in instead!")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.rd.ServerError(c, err)
		return
	}

	token, err := h.users.StartSession(c.Request.Context(), user)
	if err != nil {
		h.rd.ServerError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.rd.HTML(c, http.StatusOK, "login.html", gin.H{"FormError": "Please fill in all fields with a valid email."})
		return
	}

	user, err := h.users.Login(form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrEmailNotFound):
		h.rd.Flash(c, "The email does not exist, please try again")
		h.rd.HTML(c, http.StatusOK, "login.html", nil)
		return
	case errors.Is(err, service.ErrPasswordMismatch):
		h.rd.Flash(c, "Password incorrect, please try again")
		h.rd.HTML(c, http.StatusOK, "login.html", nil)
		return
	case err != nil:
		h.rd.ServerError(c, err)
		return
	}

	token, err := h.users.StartSession(c.Request.Context(), user)
	if err != nil {
		h.rd.ServerError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		_ = h.users.EndSession(c.Request.Context(), user.ID)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
