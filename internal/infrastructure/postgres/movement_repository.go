package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implémentation sur PostgreSQL (pool ou tx). Le journal
// est en ajout seul: pas d'UPDATE ni de DELETE sur movements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construit l'adaptateur. Passer pool ou tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, type, item_type, item_id, lot, qty, from_location_id, to_location_id, of_id, reference, created_by, created_at`

// Create persiste un mouvement.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.ItemType, m.ItemID, nullable(m.Lot), m.Qty,
		nullable(m.FromLocationID), nullable(m.ToLocationID), nullable(m.OfID),
		nullable(m.Reference), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID retourne un mouvement, nil si introuvable.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByItem liste l'historique d'un item sur une plage de dates.
func (r *MovementRepo) ListByItem(itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE item_type = $1 AND item_id = $2`
	args := []any{itemType, itemID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByLocation liste les mouvements touchant un emplacement (source
// ou destination) sur une plage de dates.
func (r *MovementRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE (from_location_id = $1 OR to_location_id = $1)`
	args := []any{locationID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByOF liste les mouvements rattachés à un ordre de fabrication.
func (r *MovementRepo) ListByOF(ofID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE of_id = $1 ORDER BY created_at`
	return r.list(query, []any{ofID})
}

func (r *MovementRepo) list(query string, args []any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var lot, fromLoc, toLoc, ofID, reference, createdBy *string
	if err := row.Scan(
		&m.ID, &m.Type, &m.ItemType, &m.ItemID, &lot, &m.Qty,
		&fromLoc, &toLoc, &ofID, &reference, &createdBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Lot = deref(lot)
	m.FromLocationID = deref(fromLoc)
	m.ToLocationID = deref(toLoc)
	m.OfID = deref(ofID)
	m.Reference = deref(reference)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
