package repository

import "github.com/dukapos/pos-api/internal/domain/entity"

// UserRepository data access for POS operators.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
