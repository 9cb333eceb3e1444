package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// UserRepository est le port de persistance des utilisateurs.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
