package handler

import (
	"net/http"

	"goblog/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	rd  *Renderer
	svc *service.ContactService
}

func NewContactHandler(rd *Renderer, svc *service.ContactService) *ContactHandler {
	return &ContactHandler{rd: rd, svc: svc}
}

func (h *ContactHandler) Show(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "contact.html", nil)
}

func (h *ContactHandler) Send(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.rd.HTML(c, http.StatusOK, "contact.html", gin.H{"FormError": "Please fill in all fields with a valid email."})
		return
	}

	if err := h.svc.Relay(form.Name, form.Email, form.Phone, form.Message); err != nil {
		h.rd.ServerError(c, err)
		return
	}

	h.rd.Flash(c, "Form submission successful!")
	h.rd.HTML(c, http.StatusOK, "contact.html", nil)
}
