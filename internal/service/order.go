package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
)

// Errors returned by the order service.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrOrderBusy     = errors.New("order mutation already in progress")
)

// Fallback snapshot used when no active product exists yet. Mirrors the
// seeded default product.
var (
	defaultProductName  = "سيروم كيكه"
	defaultProductPrice = decimal.NewFromInt(350)
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods the service needs.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetCanonicalProduct(ctx context.Context) (database.Product, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// Notifier signals connected dashboard clients that the order list changed.
// Satisfied by *ws.Hub.
type Notifier interface {
	Notify()
}

// CreateOrderRequest is the validated, normalized input for a new order.
type CreateOrderRequest struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerNotes   string
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
	notifier Notifier

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, notifier Notifier) *OrderService {
	return &OrderService{
		pool:     pool,
		newStore: newStore,
		notifier: notifier,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// Create snapshots the canonical product's name and price into a new NEW
// order, atomically with the product read so a concurrent product edit
// cannot produce a torn snapshot.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (database.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	productName := defaultProductName
	productPrice := defaultProductPrice
	product, err := store.GetCanonicalProduct(ctx)
	switch {
	case err == nil:
		productName = product.Name
		productPrice = database.NumericToDecimal(product.Price)
	case errors.Is(err, pgx.ErrNoRows):
		// No active product yet, keep the fallback snapshot.
	default:
		return database.Order{}, fmt.Errorf("get canonical product: %w", err)
	}

	notes := pgtype.Text{}
	if req.CustomerNotes != "" {
		notes = pgtype.Text{String: req.CustomerNotes, Valid: true}
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerNotes:   notes,
		ProductName:     productName,
		ProductPrice:    database.DecimalToNumeric(productPrice),
	})
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}

	s.notify()
	return order, nil
}

// UpdateStatus moves an order to the given status. Any status can move to
// any other, and re-applying the current status is a no-op that still
// succeeds. Returns ErrOrderBusy when another mutation of the same order is
// still running.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (database.Order, error) {
	if !enum.IsValidOrderStatus(status) {
		return database.Order{}, ErrInvalidStatus
	}

	if !s.acquire(id) {
		return database.Order{}, ErrOrderBusy
	}
	defer s.release(id)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	order, err := store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:     id,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}

	s.notify()
	return order, nil
}

// Delete permanently removes an order. Returns ErrOrderBusy when another
// mutation of the same order is still running.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.acquire(id) {
		return ErrOrderBusy
	}
	defer s.release(id)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	if err := store.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.notify()
	return nil
}

// acquire marks an order id as having a mutation in flight. Returns false
// when one is already running.
func (s *OrderService) acquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *OrderService) release(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

func (s *OrderService) notify() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
