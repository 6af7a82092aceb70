package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

type ticketStore interface {
	List(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, int, error)
	FindByCode(ctx context.Context, ticketCode string) (*models.Ticket, error)
}

// TicketService reads the support ticket mirror for timesheet references.
type TicketService struct {
	repo   ticketStore
	logger *zap.Logger
}

// NewTicketService constructs a TicketService.
func NewTicketService(repo ticketStore, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{repo: repo, logger: logger}
}

// List returns a page of tickets.
func (s *TicketService) List(ctx context.Context, filter models.TicketFilter, claims *models.JWTClaims) (*dto.TicketListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	filter.Limit, filter.Offset = models.NormalizePage(filter.Limit, filter.Offset)

	tickets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tickets", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tickets")
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return &dto.TicketListResponse{
		Tickets:    tickets,
		Pagination: *models.NewPagination(total, filter.Limit, filter.Offset, len(tickets)),
	}, nil
}

// Get returns one ticket by code.
func (s *TicketService) Get(ctx context.Context, ticketCode string, claims *models.JWTClaims) (*models.Ticket, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	ticket, err := s.repo.FindByCode(ctx, ticketCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
		}
		s.logger.Error("failed to load ticket", zap.String("ticket_code", ticketCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ticket")
	}
	return ticket, nil
}
