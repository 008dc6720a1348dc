package repository

import "github.com/dukapos/pos-api/internal/domain/entity"

// CustomerRepository data access for customers.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	FindByPhone(phone string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
