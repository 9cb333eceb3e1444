package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation vérifie si une erreur est une violation de
// contrainte unique (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// nullable convertit une chaîne vide en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref retourne la valeur d'un pointeur, vide si nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
