package handler

import (
	"net/http"

	"github.com/guilhermegamabs/fiado-v2/internal/apierror"
	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct {
	svc    service.ClienteService
	fiados service.FiadoService
}

func NewClientesHandler(svc service.ClienteService, fiados service.FiadoService) *ClientesHandler {
	return &ClientesHandler{svc: svc, fiados: fiados}
}

// Listar godoc
// @Summary Lista clientes com saldo devedor, maiores dívidas primeiro
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClienteComDivida
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	lista, err := h.svc.ListarComDivida(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, lista)
}

// Criar godoc
// @Summary Cadastra um novo cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarClienteRequest true "Dados do cliente"
// @Success 201 {object} dto.ClienteComDivida
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Criar(c *gin.Context) {
	var req dto.CriarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Detalhe godoc
// @Summary Detalhe do cliente: itens pendentes, últimos pagamentos e saldo
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ClienteDetalheResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [get]
func (h *ClientesHandler) Detalhe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Detalhe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary Exclui o cliente e todo o seu histórico de fiados e pagamentos
// @Tags clientes
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [delete]
func (h *ClientesHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarFiado godoc
// @Summary Lança um novo fiado para o cliente
// @Tags clientes
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param body body dto.RegistrarFiadoRequest true "Fiado"
// @Success 201
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clientes/{id}/fiados [post]
func (h *ClientesHandler) RegistrarFiado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarFiadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.fiados.RegistrarFiado(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}

// RegistrarPagamento godoc
// @Summary Registra um abatimento na dívida do cliente
// @Tags clientes
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param body body dto.RegistrarPagamentoRequest true "Pagamento"
// @Success 201
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clientes/{id}/pagamentos [post]
func (h *ClientesHandler) RegistrarPagamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.fiados.RegistrarPagamento(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusCreated)
}
