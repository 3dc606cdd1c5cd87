package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	rd *Renderer
}

func NewPageHandler(rd *Renderer) *PageHandler {
	return &PageHandler{rd: rd}
}

func (h *PageHandler) About(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "about.html", nil)
}

func (h *PageHandler) Forbidden(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "four_hundred_three.html", nil)
}
