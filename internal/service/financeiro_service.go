package service

import (
	"context"
	"sort"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/model"
	"github.com/guilhermegamabs/fiado-v2/internal/repository"
)

// FinanceiroService is the reporting engine: monthly and annual aggregation
// over caixa closings, recovered fiado payments and expenses, plus the two
// write paths that feed it (fechar caixa, nova despesa).
type FinanceiroService interface {
	RelatorioMes(ctx context.Context, mes, ano int) (*dto.RelatorioMesResponse, error)
	HistoricoAnual(ctx context.Context) ([]dto.HistoricoMes, error)
	FecharCaixa(ctx context.Context, req dto.FecharCaixaRequest) error
	NovaDespesa(ctx context.Context, req dto.NovaDespesaRequest) error
}

type financeiroService struct {
	caixaRepo   repository.CaixaRepository
	despesaRepo repository.DespesaRepository
	fiadoRepo   repository.FiadoRepository
}

func NewFinanceiroService(
	caixaRepo repository.CaixaRepository,
	despesaRepo repository.DespesaRepository,
	fiadoRepo repository.FiadoRepository,
) FinanceiroService {
	return &financeiroService{caixaRepo: caixaRepo, despesaRepo: despesaRepo, fiadoRepo: fiadoRepo}
}

// periodoMes returns the inclusive [first, last] day of a month. The upper
// bound is calendar-aware (28/29/30/31), never a fixed day 31.
func periodoMes(mes, ano int) (time.Time, time.Time) {
	de := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.Local)
	ate := de.AddDate(0, 1, -1)
	return de, ate
}

// ── RelatorioMes ──────────────────────────────────────────────────────────────
// saldo = entradas_caixa − total_saidas. RecuperadoFiado stays out of that
// subtraction: those payments were already counted inside a day's register
// closing, so folding them in again would double-count.

func (s *financeiroService) RelatorioMes(ctx context.Context, mes, ano int) (*dto.RelatorioMesResponse, error) {
	de, ate := periodoMes(mes, ano)

	entradas, err := s.caixaRepo.SumPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	recuperado, err := s.fiadoRepo.SumPagamentosPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	saidas, err := s.despesaRepo.SumPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	despesas, err := s.despesaRepo.ListPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	caixas, err := s.caixaRepo.ListPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioMesResponse{
		Mes:             mes,
		Ano:             ano,
		EntradasCaixa:   entradas,
		RecuperadoFiado: recuperado,
		TotalSaidas:     saidas,
		Saldo:           entradas.Sub(saidas),
		Despesas:        make([]dto.DespesaResponse, 0, len(despesas)),
		Caixas:          make([]dto.CaixaDiaResponse, 0, len(caixas)),
	}
	for _, d := range despesas {
		resp.Despesas = append(resp.Despesas, dto.DespesaResponse{
			ID:        d.ID.String(),
			Data:      d.DataDespesa.Format("2006-01-02"),
			Descricao: d.Descricao,
			Valor:     d.Valor,
			Categoria: d.Categoria,
		})
	}
	for _, c := range caixas {
		resp.Caixas = append(resp.Caixas, dto.CaixaDiaResponse{
			Data:       c.DataReferencia.Format("2006-01-02"),
			Dinheiro:   c.Dinheiro,
			Moeda:      c.Moeda,
			Cartao:     c.Cartao,
			Pix:        c.Pix,
			Total:      c.Total(),
			Observacao: c.Observacao,
		})
	}
	return resp, nil
}

// ── HistoricoAnual ────────────────────────────────────────────────────────────
// One row per month that has at least one caixa or despesa record, newest
// first; falls back to the current month when the store is empty.

func (s *financeiroService) HistoricoAnual(ctx context.Context) ([]dto.HistoricoMes, error) {
	meses, err := s.mesesDisponiveis(ctx)
	if err != nil {
		return nil, err
	}

	historico := make([]dto.HistoricoMes, 0, len(meses))
	for _, m := range meses {
		rel, err := s.RelatorioMes(ctx, m.Mes, m.Ano)
		if err != nil {
			return nil, err
		}
		historico = append(historico, dto.HistoricoMes{Mes: m.Mes, Ano: m.Ano, Saldo: rel.Saldo})
	}
	return historico, nil
}

func (s *financeiroService) mesesDisponiveis(ctx context.Context) ([]repository.MesAno, error) {
	deCaixa, err := s.caixaRepo.MesesDisponiveis(ctx)
	if err != nil {
		return nil, err
	}
	deDespesas, err := s.despesaRepo.MesesDisponiveis(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[repository.MesAno]struct{}, len(deCaixa)+len(deDespesas))
	for _, m := range deCaixa {
		set[m] = struct{}{}
	}
	for _, m := range deDespesas {
		set[m] = struct{}{}
	}

	if len(set) == 0 {
		agora := time.Now()
		return []repository.MesAno{{Mes: int(agora.Month()), Ano: agora.Year()}}, nil
	}

	meses := make([]repository.MesAno, 0, len(set))
	for m := range set {
		meses = append(meses, m)
	}
	sort.Slice(meses, func(i, j int) bool {
		if meses[i].Ano != meses[j].Ano {
			return meses[i].Ano > meses[j].Ano
		}
		return meses[i].Mes > meses[j].Mes
	})
	return meses, nil
}

// ── FecharCaixa ───────────────────────────────────────────────────────────────
// Always keyed on today's date; re-closing overwrites in place.

func (s *financeiroService) FecharCaixa(ctx context.Context, req dto.FecharCaixaRequest) error {
	hoje := time.Now()
	caixa := &model.CaixaDiario{
		DataReferencia: time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.Local),
		Dinheiro:       req.Dinheiro,
		Moeda:          req.Moeda,
		Cartao:         req.Cartao,
		Pix:            req.Pix,
		Observacao:     req.Observacao,
	}
	return s.caixaRepo.Upsert(ctx, caixa)
}

// ── NovaDespesa ───────────────────────────────────────────────────────────────

func (s *financeiroService) NovaDespesa(ctx context.Context, req dto.NovaDespesaRequest) error {
	hoje := time.Now()
	despesa := &model.Despesa{
		DataDespesa: time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.Local),
		Descricao:   req.Descricao,
		Valor:       req.Valor,
		Categoria:   req.Categoria,
	}
	return s.despesaRepo.Create(ctx, despesa)
}
