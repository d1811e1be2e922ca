package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListarComDividaOrdenadoPorDivida(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)

	a := novoCliente(t, clienteRepo, "A")
	b := novoCliente(t, clienteRepo, "B")
	c := novoCliente(t, clienteRepo, "C")

	agora := time.Now()
	addFiado(fiadoRepo, a, 5, agora)
	addFiado(fiadoRepo, b, 50, agora)
	addFiado(fiadoRepo, c, 10, agora)
	addPagamento(fiadoRepo, c, 20, agora) // C fica em crédito (-10)

	lista, err := svc.ListarComDivida(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "B", lista[0].Nome)
	assert.Equal(t, "A", lista[1].Nome)
	assert.Equal(t, "C", lista[2].Nome)
	assert.True(t, lista[2].DividaTotal.Equal(dec(-10)))
}

func TestCriarCliente(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)

	resp, err := svc.Criar(context.Background(), dto.CriarClienteRequest{Nome: "Dona Marta"})
	require.NoError(t, err)
	assert.Equal(t, "Dona Marta", resp.Nome)
	assert.NotEmpty(t, resp.ID)
}

func TestDetalheClienteInexistente(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)

	_, err := svc.Detalhe(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestDetalheClienteCompleto(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)
	id := novoCliente(t, clienteRepo, "Zé")

	base := time.Date(2026, 5, 2, 9, 0, 0, 0, time.Local)
	addFiado(fiadoRepo, id, 30, base)
	addPagamento(fiadoRepo, id, 12, base.Add(time.Hour))

	det, err := svc.Detalhe(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Zé", det.Nome)
	assert.True(t, det.Saldo.Equal(dec(18)))
	require.Len(t, det.Itens, 1)
	assert.Equal(t, dto.StatusParcial, det.Itens[0].Status)
	assert.True(t, det.Itens[0].ValorRestante.Equal(dec(18)))
	require.Len(t, det.Pagamentos, 1)
}

func TestExcluirClienteRemoveHistorico(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)
	id := novoCliente(t, clienteRepo, "Teo")

	addFiado(fiadoRepo, id, 30, time.Now())
	addPagamento(fiadoRepo, id, 10, time.Now())

	require.NoError(t, svc.Excluir(context.Background(), id))

	// Gone from the listing, and a balance lookup sees the zero-row default.
	lista, err := svc.ListarComDivida(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lista)

	saldo, err := fiadoSvc.Saldo(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, saldo.IsZero(), "no stale data after cascade delete")
}

func TestExcluirClienteInexistente(t *testing.T) {
	fiadoRepo := newFakeFiadoRepo()
	clienteRepo := newFakeClienteRepo(fiadoRepo)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	svc := service.NewClienteService(clienteRepo, fiadoSvc)

	assert.Error(t, svc.Excluir(context.Background(), uuid.New()))
}
