package sales

import (
	"context"

	"github.com/dukapos/pos-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, handing the
// callback repositories bound to that transaction. If the callback returns an
// error nothing is committed; the ledger never holds partial sale state.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		custTxRepo repository.CustomerTransactionRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
