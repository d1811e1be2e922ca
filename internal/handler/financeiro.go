package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/apierror"
	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/infra"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceiroHandler struct{ svc service.FinanceiroService }

func NewFinanceiroHandler(svc service.FinanceiroService) *FinanceiroHandler {
	return &FinanceiroHandler{svc: svc}
}

// mesAnoQuery reads ?mes= and ?ano=, defaulting to the current month.
func mesAnoQuery(c *gin.Context) (int, int, bool) {
	agora := time.Now()
	mes, err := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(agora.Month()))))
	if err != nil || mes < 1 || mes > 12 {
		c.JSON(http.StatusBadRequest, apierror.New("mês inválido"))
		return 0, 0, false
	}
	ano, err := strconv.Atoi(c.DefaultQuery("ano", strconv.Itoa(agora.Year())))
	if err != nil || ano < 2000 || ano > 2100 {
		c.JSON(http.StatusBadRequest, apierror.New("ano inválido"))
		return 0, 0, false
	}
	return mes, ano, true
}

// Relatorio godoc
// @Summary Relatório do mês + histórico mensal de resultados
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Param mes query int false "Mês (1-12), padrão: atual"
// @Param ano query int false "Ano, padrão: atual"
// @Success 200 {object} dto.FinanceiroResponse
// @Router /v1/financeiro [get]
func (h *FinanceiroHandler) Relatorio(c *gin.Context) {
	mes, ano, ok := mesAnoQuery(c)
	if !ok {
		return
	}

	rel, err := h.svc.RelatorioMes(c.Request.Context(), mes, ano)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	historico, err := h.svc.HistoricoAnual(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.FinanceiroResponse{Relatorio: *rel, Historico: historico})
}

// RelatorioPDF godoc
// @Summary Relatório do mês em PDF
// @Tags financeiro
// @Produce application/pdf
// @Security BearerAuth
// @Param mes query int false "Mês (1-12), padrão: atual"
// @Param ano query int false "Ano, padrão: atual"
// @Success 200 {file} binary
// @Router /v1/financeiro/relatorio.pdf [get]
func (h *FinanceiroHandler) RelatorioPDF(c *gin.Context) {
	mes, ano, ok := mesAnoQuery(c)
	if !ok {
		return
	}

	rel, err := h.svc.RelatorioMes(c.Request.Context(), mes, ano)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	pdf, err := infra.GenerateRelatorioPDF(rel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="relatorio_%04d-%02d.pdf"`, ano, mes))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// FecharCaixa godoc
// @Summary Fecha (ou atualiza) o caixa do dia
// @Tags financeiro
// @Accept json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Valores por tipo de recebimento"
// @Success 204
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/financeiro/caixa [post]
func (h *FinanceiroHandler) FecharCaixa(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.FecharCaixa(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// NovaDespesa godoc
// @Summary Lança uma despesa datada de hoje
// @Tags financeiro
// @Accept json
// @Security BearerAuth
// @Param body body dto.NovaDespesaRequest true "Despesa"
// @Success 201
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/financeiro/despesas [post]
func (h *FinanceiroHandler) NovaDespesa(c *gin.Context) {
	var req dto.NovaDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.NovaDespesa(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}
