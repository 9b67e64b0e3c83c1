package notifier

import "go-suministros-api/internal/model"

// Notifier is the outbound alert side effect invoked by the sale service
// when a product crosses its depletion threshold. Implementations must be
// safe to call after the sale has committed; errors are the caller's
// problem to log and swallow.
type Notifier interface {
	SendStockAlert(product *model.Product) error
}
