package customers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/application/ledger"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// CustomerUseCase customer management. Balances always come from the ledger
// aggregator; this use case never computes them itself.
type CustomerUseCase struct {
	repo       repository.CustomerRepository
	custTxRepo repository.CustomerTransactionRepository
	aggregator *ledger.Aggregator
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, custTxRepo repository.CustomerTransactionRepository, aggregator *ledger.Aggregator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, custTxRepo: custTxRepo, aggregator: aggregator}
}

// Create registers a customer.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID:     customer.ID,
		Name:   customer.Name,
		Phone:  customer.Phone,
		Status: entity.BalanceSettled,
	}, nil
}

// GetByID returns a customer with derived balance and status.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	return uc.aggregator.CustomerBalance(ctx, id)
}

// List returns a page of customers with derived balances.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		balance, err := uc.custTxRepo.SumByCustomer(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.CustomerResponse{
			ID:      c.ID,
			Name:    c.Name,
			Phone:   c.Phone,
			Balance: balance,
			Status:  ledger.ClassifyBalance(balance),
		})
	}
	return out, nil
}

// ListTransactions returns a customer's ledger history, newest first.
func (uc *CustomerUseCase) ListTransactions(ctx context.Context, customerID string, limit int) ([]dto.CustomerTransactionResponse, error) {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	txs, err := uc.custTxRepo.ListByCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.CustomerTransactionResponse{
			ID:        tx.ID,
			Amount:    tx.Amount,
			Reason:    tx.Reason,
			SaleID:    tx.SaleID,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
