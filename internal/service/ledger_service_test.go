package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. AdjustStockTx mirrors
// the conditional SQL update: it refuses any delta that would go negative
// and reports affected rows, under a mutex so concurrent callers serialize
// the same way row locks do.
type stubProductRepo struct {
	mu       sync.Mutex
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product), nextID: 1}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *stubProductRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountBelowMinimum(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.StockQuantity < p.MinStockLevel {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uint, delta int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.StockQuantity+delta < 0 {
		return 0, nil
	}
	p.StockQuantity += delta
	return 1, nil
}

func (r *stubProductRepo) StockQuantityTx(_ *gorm.DB, id uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return p.StockQuantity, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLedgerApplyDelta(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&model.Product{Name: "Rice 5kg", Code: "FD-0001", StockQuantity: 10, IsActive: true})
	ledger := NewLedgerService(repo)

	newQty, err := ledger.ApplyDeltaTx(nil, p.ID, 20, LedgerRef{Kind: "purchase", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 30, newQty)

	newQty, err = ledger.ApplyDeltaTx(nil, p.ID, -25, LedgerRef{Kind: "sale", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, newQty)
}

func TestLedgerRejectsBelowZero(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&model.Product{Name: "Rice 5kg", Code: "FD-0001", StockQuantity: 5, IsActive: true})
	ledger := NewLedgerService(repo)

	_, err := ledger.ApplyDeltaTx(nil, p.ID, -10, LedgerRef{Kind: "movement", ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrInsufficientStock)

	// quantity untouched, not clamped to zero
	qty, err := repo.StockQuantityTx(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

func TestLedgerUnknownProduct(t *testing.T) {
	repo := newStubProductRepo()
	ledger := NewLedgerService(repo)

	_, err := ledger.ApplyDeltaTx(nil, 999, -1, LedgerRef{Kind: "sale", ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
	assert.NotErrorIs(t, err, apierror.ErrInsufficientStock)
}

func TestLedgerZeroDelta(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&model.Product{Name: "Rice 5kg", Code: "FD-0001", StockQuantity: 7, IsActive: true})
	ledger := NewLedgerService(repo)

	qty, err := ledger.ApplyDeltaTx(nil, p.ID, 0, LedgerRef{Kind: "movement", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
}

// Sequence from a typical day: start at 10, purchase 20, sell 25, then an
// oversized out-movement must bounce without touching the quantity.
func TestLedgerSequence(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&model.Product{Name: "Sugar 1kg", Code: "FD-0002", StockQuantity: 10, IsActive: true})
	ledger := NewLedgerService(repo)

	qty, err := ledger.ApplyDeltaTx(nil, p.ID, 20, LedgerRef{Kind: "purchase", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 30, qty)

	qty, err = ledger.ApplyDeltaTx(nil, p.ID, -25, LedgerRef{Kind: "sale", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	_, err = ledger.ApplyDeltaTx(nil, p.ID, -6, LedgerRef{Kind: "movement", ID: 1})
	assert.ErrorIs(t, err, apierror.ErrInsufficientStock)

	qty, err = repo.StockQuantityTx(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

// Two concurrent stock-outs of 3 against a stock of 5: exactly one may win.
func TestLedgerConcurrentStockOut(t *testing.T) {
	repo := newStubProductRepo()
	p := repo.add(&model.Product{Name: "Milk 1L", Code: "FD-0003", StockQuantity: 5, IsActive: true})
	ledger := NewLedgerService(repo)

	const writers = 2
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyDeltaTx(nil, p.ID, -3, LedgerRef{Kind: "sale", ID: uint(i + 1)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, apierror.ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	qty, err := repo.StockQuantityTx(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
}
