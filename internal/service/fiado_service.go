package service

import (
	"context"
	"errors"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/model"
	"github.com/guilhermegamabs/fiado-v2/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FiadoService is the ledger engine: balances, FIFO allocation of payments
// against charges, and payment recording.
type FiadoService interface {
	RegistrarFiado(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarFiadoRequest) error
	RegistrarPagamento(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarPagamentoRequest) error
	Saldo(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error)
	ItensPendentes(ctx context.Context, clienteID uuid.UUID) ([]dto.ItemPendente, error)
	UltimosPagamentos(ctx context.Context, clienteID uuid.UUID, limite int) ([]dto.PagamentoResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type fiadoService struct {
	repo        repository.FiadoRepository
	clienteRepo repository.ClienteRepository
}

func NewFiadoService(repo repository.FiadoRepository, clienteRepo repository.ClienteRepository) FiadoService {
	return &fiadoService{repo: repo, clienteRepo: clienteRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarFiado ────────────────────────────────────────────────────────────

func (s *fiadoService) RegistrarFiado(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarFiadoRequest) error {
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return errors.New("cliente não encontrado")
	}
	fiado := &model.Fiado{
		ClienteID:    clienteID,
		Descricao:    req.Descricao,
		Valor:        req.Valor,
		DataRegistro: time.Now(),
	}
	return s.repo.CreateFiado(ctx, fiado)
}

// ── RegistrarPagamento ────────────────────────────────────────────────────────
// One atomic unit: the pagamento insert and the legacy settle pass commit
// together or not at all.
//
// The settle pass "crosses off" old fiados for display: with
// S = round2(Σ pagamentos − Σ fiados já baixados), walk unsettled fiados
// oldest-first, flagging each one whose full valor fits in S, and stop at the
// first fiado that would only be partially covered. The flag is cosmetic —
// balances and Pendente/Parcial status are always recomputed from the two
// immutable streams.

func (s *fiadoService) RegistrarPagamento(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarPagamentoRequest) error {
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return errors.New("cliente não encontrado")
	}

	agora := time.Now()
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pagamento := &model.Pagamento{
			ClienteID:     clienteID,
			Valor:         req.Valor,
			DataPagamento: agora,
		}
		if err := s.repo.CreatePagamentoTx(ctx, tx, pagamento); err != nil {
			return err
		}

		totalPago, err := s.repo.SumPagamentosTx(ctx, tx, clienteID)
		if err != nil {
			return err
		}
		totalBaixado, err := s.repo.SumFiadosBaixadosTx(ctx, tx, clienteID)
		if err != nil {
			return err
		}
		saldoVisual := totalPago.Sub(totalBaixado).Round(2)

		abertos, err := s.repo.ListNaoPagosTx(ctx, tx, clienteID)
		if err != nil {
			return err
		}
		for _, fiado := range abertos {
			if saldoVisual.LessThanOrEqual(decimal.Zero) {
				break
			}
			if saldoVisual.LessThan(fiado.Valor) {
				// Partially covered — leave unsettled, do not skip ahead.
				break
			}
			if err := s.repo.MarcarPagoTx(ctx, tx, fiado.ID, agora); err != nil {
				return err
			}
			saldoVisual = saldoVisual.Sub(fiado.Valor)
		}
		return nil
	})
}

// ── Saldo ─────────────────────────────────────────────────────────────────────
// The single source of truth: Σ fiados − Σ pagamentos. Zero rows count as
// zero; a negative result means the cliente is in credit.

func (s *fiadoService) Saldo(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	totalFiado, err := s.repo.SumFiados(ctx, clienteID)
	if err != nil {
		return decimal.Zero, err
	}
	totalPago, err := s.repo.SumPagamentos(ctx, clienteID)
	if err != nil {
		return decimal.Zero, err
	}
	return totalFiado.Sub(totalPago), nil
}

// ── ItensPendentes ────────────────────────────────────────────────────────────
// Computed fresh on every read from the two immutable streams; the stored
// pago flag plays no part here.

func (s *fiadoService) ItensPendentes(ctx context.Context, clienteID uuid.UUID) ([]dto.ItemPendente, error) {
	fiados, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	totalPago, err := s.repo.SumPagamentos(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return alocarCredito(fiados, totalPago), nil
}

// alocarCredito consumes the lifetime payment total against charges in
// creation order (oldest debt is paid first). Fully covered charges drop out;
// the first charge the credit only partially reaches is tagged Parcial with
// its open remainder; everything after it is Pendente in full. The result is
// reversed so the newest charge comes first for display.
//
// Whenever the balance is non-negative, Σ valor_restante over the result
// equals Σ fiados − credito.
func alocarCredito(fiados []model.Fiado, credito decimal.Decimal) []dto.ItemPendente {
	// Empty, not nil: the detail response must serialize as [] when nothing
	// is outstanding.
	pendentes := make([]dto.ItemPendente, 0, len(fiados))
	for _, f := range fiados {
		switch {
		case credito.GreaterThanOrEqual(f.Valor):
			credito = credito.Sub(f.Valor)
		case credito.GreaterThan(decimal.Zero):
			pendentes = append(pendentes, dto.ItemPendente{
				ID:            f.ID.String(),
				Descricao:     f.Descricao,
				Valor:         f.Valor,
				ValorRestante: f.Valor.Sub(credito),
				Status:        dto.StatusParcial,
				DataRegistro:  f.DataRegistro.Format(time.RFC3339),
			})
			credito = decimal.Zero
		default:
			pendentes = append(pendentes, dto.ItemPendente{
				ID:            f.ID.String(),
				Descricao:     f.Descricao,
				Valor:         f.Valor,
				ValorRestante: f.Valor,
				Status:        dto.StatusPendente,
				DataRegistro:  f.DataRegistro.Format(time.RFC3339),
			})
		}
	}
	// Newest first.
	for i, j := 0, len(pendentes)-1; i < j; i, j = i+1, j-1 {
		pendentes[i], pendentes[j] = pendentes[j], pendentes[i]
	}
	return pendentes
}

// ── UltimosPagamentos ─────────────────────────────────────────────────────────

func (s *fiadoService) UltimosPagamentos(ctx context.Context, clienteID uuid.UUID, limite int) ([]dto.PagamentoResponse, error) {
	pags, err := s.repo.UltimosPagamentos(ctx, clienteID, limite)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagamentoResponse, 0, len(pags))
	for _, p := range pags {
		out = append(out, dto.PagamentoResponse{
			ID:            p.ID.String(),
			Valor:         p.Valor,
			DataPagamento: p.DataPagamento.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (s *fiadoService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	hoje := time.Now()

	fiadoHoje, err := s.repo.SumFiadosDia(ctx, hoje)
	if err != nil {
		return nil, err
	}
	recebidoHoje, err := s.repo.SumPagamentosDia(ctx, hoje)
	if err != nil {
		return nil, err
	}
	totalFiado, err := s.repo.SumFiadosGeral(ctx)
	if err != nil {
		return nil, err
	}
	totalPago, err := s.repo.SumPagamentosGeral(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		FiadoHoje:    fiadoHoje,
		RecebidoHoje: recebidoHoje,
		TotalRua:     totalFiado.Sub(totalPago),
	}, nil
}
