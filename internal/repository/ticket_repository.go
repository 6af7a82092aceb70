package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// TicketRepository reads the support ticket mirror. Tickets are owned by an
// external system; this side only lists and resolves them for timesheet
// references.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository constructs a TicketRepository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `ticket_code, subject, status, priority, requester_name, assignee_code, opened_at, closed_at`

// List returns tickets matching the filter plus the unpaginated total.
func (r *TicketRepository) List(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, int, error) {
	base := "FROM tickets"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.AssigneeCode != "" {
		conditions = append(conditions, fmt.Sprintf("assignee_code = $%d", len(args)+1))
		args = append(args, filter.AssigneeCode)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(subject) LIKE $%d OR LOWER(ticket_code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	query := fmt.Sprintf("SELECT %s %s ORDER BY opened_at DESC LIMIT %d OFFSET %d",
		ticketColumns, base, filter.Limit, filter.Offset)

	var tickets []models.Ticket
	if err := r.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}
	return tickets, total, nil
}

// FindByCode fetches one ticket by its code.
func (r *TicketRepository) FindByCode(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM tickets WHERE ticket_code = $1", ticketColumns)
	var ticket models.Ticket
	if err := r.db.GetContext(ctx, &ticket, query, ticketCode); err != nil {
		return nil, err
	}
	return &ticket, nil
}
