//go:build integration

package router_test

// e2e_test.go
// End-to-end integration tests using a real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → create cliente → lançar fiado → registrar pagamento → detalhe
//   - customer list ordering by outstanding balance
//   - cascade delete wipes the customer's history
//   - fechar caixa twice keeps a single row for the date
//   - monthly report excludes recuperado_fiado from saldo
//   - payment insert rolls back when the settle pass fails

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/config"
	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/infra"
	"github.com/guilhermegamabs/fiado-v2/internal/model"
	"github.com/guilhermegamabs/fiado-v2/internal/repository"
	"github.com/guilhermegamabs/fiado-v2/internal/router"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("fiado_test"),
		tcPostgres.WithUsername("fiado"),
		tcPostgres.WithPassword("fiado"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	authSvc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
	require.NoError(t, authSvc.CriarUsuario(ctx, "admin", "fiado123"))

	r := router.New(cfg, db)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "fiado123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken, db: db}
}

func criarCliente(t *testing.T, env *testEnv, nome string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/clientes", jsonBody(t, map[string]string{"nome": nome}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.ID)
	return body.ID
}

func lancarFiado(t *testing.T, env *testEnv, clienteID string, valor float64) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/clientes/"+clienteID+"/fiados",
		jsonBody(t, map[string]any{"descricao": "compra", "valor": valor}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func pagar(t *testing.T, env *testEnv, clienteID string, valor float64) {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/clientes/"+clienteID+"/pagamentos",
		jsonBody(t, map[string]any{"valor": valor}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

type detalheBody struct {
	Saldo decimal.Decimal `json:"saldo"`
	Itens []struct {
		Status        string          `json:"status"`
		Valor         decimal.Decimal `json:"valor"`
		ValorRestante decimal.Decimal `json:"valor_restante"`
	} `json:"itens_pendentes"`
	Pagamentos []struct {
		Valor decimal.Decimal `json:"valor"`
	} `json:"ultimos_pagamentos"`
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloFiadoCompleto(t *testing.T) {
	env := setupTestEnv(t)
	clienteID := criarCliente(t, env, "Maria da Esquina")

	lancarFiado(t, env, clienteID, 10)
	lancarFiado(t, env, clienteID, 20)
	lancarFiado(t, env, clienteID, 5)
	pagar(t, env, clienteID, 25)

	resp := do(t, env.server, "GET", "/v1/clientes/"+clienteID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var det detalheBody
	decodeJSON(t, resp, &det)

	assert.True(t, det.Saldo.Equal(decimal.NewFromInt(10)), "saldo = 35 - 25")
	require.Len(t, det.Itens, 2)
	// Newest first: fiado 5 still fully open, fiado 20 partially covered.
	assert.Equal(t, "Pendente", det.Itens[0].Status)
	assert.True(t, det.Itens[0].ValorRestante.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Parcial", det.Itens[1].Status)
	assert.True(t, det.Itens[1].ValorRestante.Equal(decimal.NewFromInt(5)))
	require.Len(t, det.Pagamentos, 1)
}

func TestE2E_ListaOrdenadaPorDivida(t *testing.T) {
	env := setupTestEnv(t)
	a := criarCliente(t, env, "A")
	b := criarCliente(t, env, "B")
	c := criarCliente(t, env, "C")

	lancarFiado(t, env, a, 5)
	lancarFiado(t, env, b, 50)
	lancarFiado(t, env, c, 10)
	pagar(t, env, c, 20) // C em crédito

	resp := do(t, env.server, "GET", "/v1/clientes", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lista []struct {
		ID          string          `json:"id"`
		Nome        string          `json:"nome"`
		DividaTotal decimal.Decimal `json:"divida_total"`
	}
	decodeJSON(t, resp, &lista)
	require.Len(t, lista, 3)
	assert.Equal(t, "B", lista[0].Nome)
	assert.Equal(t, "A", lista[1].Nome)
	assert.Equal(t, "C", lista[2].Nome)
	assert.True(t, lista[2].DividaTotal.Equal(decimal.NewFromInt(-10)))
}

func TestE2E_ExcluirClienteApagaHistorico(t *testing.T) {
	env := setupTestEnv(t)
	clienteID := criarCliente(t, env, "Temporário")
	lancarFiado(t, env, clienteID, 30)
	pagar(t, env, clienteID, 10)

	resp := do(t, env.server, "DELETE", "/v1/clientes/"+clienteID, nil, env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/clientes/"+clienteID, nil, env.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/clientes", nil, env.token)
	var lista []map[string]any
	decodeJSON(t, resp, &lista)
	assert.Empty(t, lista, "no stale rows after cascade delete")
}

func TestE2E_FecharCaixaIdempotentePorData(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/financeiro/caixa",
		jsonBody(t, map[string]any{"dinheiro": 80.0}), env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/financeiro/caixa",
		jsonBody(t, map[string]any{"dinheiro": 95.0, "pix": 10.0, "observacao": "corrigido"}), env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/financeiro", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fin struct {
		Relatorio struct {
			EntradasCaixa decimal.Decimal `json:"entradas_caixa"`
			Caixas        []struct {
				Total decimal.Decimal `json:"total"`
			} `json:"caixas"`
		} `json:"relatorio"`
	}
	decodeJSON(t, resp, &fin)
	require.Len(t, fin.Relatorio.Caixas, 1, "same-date re-close must overwrite")
	assert.True(t, fin.Relatorio.EntradasCaixa.Equal(decimal.NewFromInt(105)))
}

func TestE2E_RelatorioExcluiRecuperadoDoSaldo(t *testing.T) {
	env := setupTestEnv(t)
	clienteID := criarCliente(t, env, "Pagador")
	lancarFiado(t, env, clienteID, 600)
	pagar(t, env, clienteID, 500)

	resp := do(t, env.server, "POST", "/v1/financeiro/caixa",
		jsonBody(t, map[string]any{"dinheiro": 100.0}), env.token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/financeiro/despesas",
		jsonBody(t, map[string]any{"descricao": "luz", "valor": 30.0, "categoria": "fixas"}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/financeiro", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fin struct {
		Relatorio struct {
			EntradasCaixa   decimal.Decimal `json:"entradas_caixa"`
			RecuperadoFiado decimal.Decimal `json:"recuperado_fiado"`
			TotalSaidas     decimal.Decimal `json:"total_saidas"`
			Saldo           decimal.Decimal `json:"saldo"`
		} `json:"relatorio"`
	}
	decodeJSON(t, resp, &fin)
	assert.True(t, fin.Relatorio.RecuperadoFiado.Equal(decimal.NewFromInt(500)))
	assert.True(t, fin.Relatorio.Saldo.Equal(decimal.NewFromInt(70)),
		"saldo = 100 - 30, recuperado fica de fora; got %s", fin.Relatorio.Saldo)
}

// falhaMarcarPago makes the settle pass fail after the payment insert, to
// exercise the transactional boundary around RegistrarPagamento.
type falhaMarcarPago struct {
	repository.FiadoRepository
}

func (f *falhaMarcarPago) MarcarPagoTx(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ time.Time) error {
	return errors.New("falha simulada")
}

func TestE2E_PagamentoDesfeitoQuandoBaixaFalha(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	clienteRepo := repository.NewClienteRepository(env.db)
	fiadoRepo := repository.NewFiadoRepository(env.db)

	cliente := &model.Cliente{Nome: "Atômico"}
	require.NoError(t, clienteRepo.Create(ctx, cliente))

	svc := service.NewFiadoService(fiadoRepo, clienteRepo)
	require.NoError(t, svc.RegistrarFiado(ctx, cliente.ID, dto.RegistrarFiadoRequest{
		Descricao: "compra", Valor: decimal.NewFromInt(10),
	}))

	// Payment of 10 fully covers the fiado, so the settle pass runs and hits
	// the injected failure after the pagamento insert.
	quebrado := service.NewFiadoService(&falhaMarcarPago{FiadoRepository: fiadoRepo}, clienteRepo)
	err := quebrado.RegistrarPagamento(ctx, cliente.ID, dto.RegistrarPagamentoRequest{
		Valor: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	var pagamentos int64
	require.NoError(t, env.db.Table("pagamentos").
		Where("cliente_id = ?", cliente.ID).Count(&pagamentos).Error)
	assert.Zero(t, pagamentos, "payment insert must roll back together with the settle pass")

	var baixados int64
	require.NoError(t, env.db.Table("fiados").
		Where("cliente_id = ? AND pago = true", cliente.ID).Count(&baixados).Error)
	assert.Zero(t, baixados)

	saldo, err := svc.Saldo(ctx, cliente.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Equal(decimal.NewFromInt(10)), "balance unchanged after rollback")
}

func TestE2E_RotasProtegidasSemToken(t *testing.T) {
	env := setupTestEnv(t)
	for _, path := range []string{"/v1/clientes", "/v1/dashboard", "/v1/financeiro"} {
		resp := do(t, env.server, "GET", path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("path %s", path))
		resp.Body.Close()
	}
}
