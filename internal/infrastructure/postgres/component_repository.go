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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implémentation sur PostgreSQL (pool ou tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construit l'adaptateur. Passer pool ou tx.
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, code, name, uom, cout_standard, pack_colisage, active, created_at, updated_at`

// Create persiste un composant.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO components (` + componentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Code, c.Name, c.UOM, c.CoutStandard, c.PackColisage, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create component: %w", err)
	}
	return nil
}

// GetByID retourne un composant, nil si introuvable.
func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	return r.getBy("id", id)
}

// GetByCode retourne un composant par son code, nil si introuvable.
func (r *ComponentRepo) GetByCode(code string) (*entity.Component, error) {
	return r.getBy("code", code)
}

func (r *ComponentRepo) getBy(column, value string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE ` + column + ` = $1`
	var c entity.Component
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&c.ID, &c.Code, &c.Name, &c.UOM, &c.CoutStandard, &c.PackColisage, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &c, nil
}

// Update met à jour les champs descriptifs. Le coût standard est une
// référence immuable: il n'apparaît pas dans le SET.
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `
		UPDATE components
		SET name = $2, uom = $3, pack_colisage = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.UOM, c.PackColisage, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	return nil
}

// ListActive liste les composants actifs triés par code.
func (r *ComponentRepo) ListActive(limit, offset int) ([]*entity.Component, error) {
	query := `
		SELECT ` + componentColumns + ` FROM components
		WHERE active ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.UOM, &c.CoutStandard, &c.PackColisage, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetActive active/désactive un composant.
func (r *ComponentRepo) SetActive(id string, active bool) error {
	query := `UPDATE components SET active = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set component active: %w", err)
	}
	return nil
}
