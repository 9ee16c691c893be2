package repository

import "context"

// Repositories available inside a transaction.
type TxRepos interface {
	MenuItems() MenuItemRepository
	CartLines() CartLineRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
}

// Hides begin/commit/rollback from the usecases. fn runs inside one
// transaction; returning an error rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
