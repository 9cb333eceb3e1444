package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implémentation des emplacements sur PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construit l'adaptateur. Passer pool ou tx.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste un emplacement.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `INSERT INTO locations (id, code, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.Code, l.Name, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID retourne un emplacement, nil si introuvable.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getBy("id", id)
}

// GetByCode retourne un emplacement par son code (DEPOT, PIPCOS...),
// nil si introuvable.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	return r.getBy("code", code)
}

func (r *LocationRepo) getBy(column, value string) (*entity.Location, error) {
	query := `SELECT id, code, name, created_at FROM locations WHERE ` + column + ` = $1`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, value).Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List retourne tous les emplacements triés par code.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, code, name, created_at FROM locations ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
