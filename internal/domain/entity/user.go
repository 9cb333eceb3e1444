package entity

import "time"

// Rôles applicatifs. Seuls ADMIN et OPERATEUR peuvent muter les stocks.
const (
	RoleAdmin     = "ADMIN"
	RoleOperateur = "OPERATEUR"
	RoleLecteur   = "LECTEUR"
)

// User représente un utilisateur de l'application.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
