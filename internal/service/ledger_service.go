package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LedgerRef identifies the transaction row that caused a quantity change,
// for audit logging.
type LedgerRef struct {
	Kind string // "purchase" | "sale" | "movement"
	ID   uint
}

func (r LedgerRef) String() string { return fmt.Sprintf("%s/%d", r.Kind, r.ID) }

// LedgerService is the single path through which product quantities change.
// Every recorder (purchase, sale, stock movement) inserts its row and applies
// its delta through ApplyDeltaTx inside ONE database transaction — either
// both writes commit or neither is visible.
//
// Concurrency safety comes from the conditional atomic update in the
// repository (stock_quantity = stock_quantity + delta, guarded to stay >= 0,
// checked by affected-row count). Two simultaneous callers against the same
// product can never both read the same "before" quantity and overwrite each
// other's result; committed quantities are consistent with some serialization
// of the concurrent requests.
//
// Retried requests double-apply: the ledger carries no idempotency key.
// Known gap, deliberately not papered over here.
type LedgerService interface {
	// ApplyDeltaTx applies a signed quantity delta (positive = stock-in,
	// negative = stock-out) to the product inside tx and returns the new
	// quantity. A stock-out that would drive the quantity negative fails
	// with apierror.ErrInsufficientStock and mutates nothing.
	ApplyDeltaTx(tx *gorm.DB, productID uint, delta int, ref LedgerRef) (int, error)
}

type ledgerService struct {
	products repository.ProductRepository
}

func NewLedgerService(products repository.ProductRepository) LedgerService {
	return &ledgerService{products: products}
}

func (s *ledgerService) ApplyDeltaTx(tx *gorm.DB, productID uint, delta int, ref LedgerRef) (int, error) {
	if delta == 0 {
		return s.products.StockQuantityTx(tx, productID)
	}

	affected, err := s.products.AdjustStockTx(tx, productID, delta)
	if err != nil {
		return 0, fmt.Errorf("ledger %s: adjust stock: %w", ref, err)
	}
	if affected == 0 {
		// The guard refused the update: either the product does not exist or
		// the delta would go negative. Re-read inside the tx to tell apart.
		if _, err := s.products.StockQuantityTx(tx, productID); errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("ledger %s: product %d: %w", ref, productID, apierror.ErrNotFound)
		}
		return 0, fmt.Errorf("ledger %s: product %d: %w", ref, productID, apierror.ErrInsufficientStock)
	}

	newQty, err := s.products.StockQuantityTx(tx, productID)
	if err != nil {
		return 0, fmt.Errorf("ledger %s: read quantity: %w", ref, err)
	}

	log.Debug().
		Uint("product_id", productID).
		Int("delta", delta).
		Int("new_quantity", newQty).
		Str("ref", ref.String()).
		Msg("stock ledger delta applied")

	return newQty, nil
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
