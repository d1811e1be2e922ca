package service

import (
	"context"
	"errors"

	"github.com/guilhermegamabs/fiado-v2/internal/dto"
	"github.com/guilhermegamabs/fiado-v2/internal/model"
	"github.com/guilhermegamabs/fiado-v2/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteComDivida, error)
	ListarComDivida(ctx context.Context) ([]dto.ClienteComDivida, error)
	Detalhe(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalheResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo   repository.ClienteRepository
	fiados FiadoService
}

func NewClienteService(repo repository.ClienteRepository, fiados FiadoService) ClienteService {
	return &clienteService{repo: repo, fiados: fiados}
}

func (s *clienteService) Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteComDivida, error) {
	cliente := &model.Cliente{Nome: req.Nome}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return &dto.ClienteComDivida{ID: cliente.ID.String(), Nome: cliente.Nome}, nil
}

func (s *clienteService) ListarComDivida(ctx context.Context) ([]dto.ClienteComDivida, error) {
	rows, err := s.repo.ListComDivida(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteComDivida, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClienteComDivida{
			ID:          r.ID.String(),
			Nome:        r.Nome,
			DividaTotal: r.DividaTotal,
		})
	}
	return out, nil
}

func (s *clienteService) Detalhe(ctx context.Context, id uuid.UUID) (*dto.ClienteDetalheResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cliente não encontrado")
		}
		return nil, err
	}

	itens, err := s.fiados.ItensPendentes(ctx, id)
	if err != nil {
		return nil, err
	}
	pagamentos, err := s.fiados.UltimosPagamentos(ctx, id, 3)
	if err != nil {
		return nil, err
	}
	saldo, err := s.fiados.Saldo(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ClienteDetalheResponse{
		ID:         cliente.ID.String(),
		Nome:       cliente.Nome,
		Saldo:      saldo,
		Itens:      itens,
		Pagamentos: pagamentos,
	}, nil
}

// Excluir removes the cliente and its whole history (fiados + pagamentos) in
// one transaction. The schema does not rely on ON DELETE CASCADE.
func (s *clienteService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente não encontrado")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteCascadeTx(ctx, tx, id)
	})
}
