package handler

import (
	"net/http"

	"github.com/guilhermegamabs/fiado-v2/internal/apierror"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.FiadoService }

func NewDashboardHandler(svc service.FiadoService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Totais godoc
// @Summary Totais do dia e total na rua
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Totais(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
