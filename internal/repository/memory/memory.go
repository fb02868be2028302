// Package memory provides in-memory implementations of the domain
// repositories. They back the unit tests and local runs without
// Postgres. A RWMutex gives per-record atomicity; cross-record
// transactions are out of scope, matching the store contract.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"brokersim/internal/domain"
)

// Store holds all in-memory collections behind one lock.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*domain.User
	assets      map[int64]*domain.Asset
	orders      map[uuid.UUID]*domain.Order
	orderSeq    map[uuid.UUID]int // insertion sequence, keeps the fold deterministic
	nextAssetID int64
	nextOrder   int
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*domain.User),
		assets:   make(map[int64]*domain.Asset),
		orders:   make(map[uuid.UUID]*domain.Order),
		orderSeq: make(map[uuid.UUID]int),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() domain.UserRepository { return &userRepo{s} }

// Assets returns an AssetRepository view of the store.
func (s *Store) Assets() domain.AssetRepository { return &assetRepo{s} }

// Orders returns an OrderRepository view of the store.
func (s *Store) Orders() domain.OrderRepository { return &orderRepo{s} }

// ----- users -----

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	cp := *user
	return &cp, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", email)
}

func (r *userRepo) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("user %s not found", id)
	}
	delete(r.s.users, id)
	// Cascade like the orders.user_id foreign key
	for orderID, order := range r.s.orders {
		if order.UserID == id {
			delete(r.s.orders, orderID)
			delete(r.s.orderSeq, orderID)
		}
	}
	return nil
}

// ----- assets -----

type assetRepo struct{ s *Store }

func (r *assetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAssetID++
	asset.ID = r.s.nextAssetID
	cp := *asset
	r.s.assets[asset.ID] = &cp
	return nil
}

func (r *assetRepo) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	asset, ok := r.s.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset %d not found", id)
	}
	cp := *asset
	return &cp, nil
}

func (r *assetRepo) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, asset := range r.s.assets {
		if asset.Symbol == symbol {
			cp := *asset
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("asset %s not found", symbol)
}

func (r *assetRepo) GetAllActive(ctx context.Context) ([]*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	assets := make([]*domain.Asset, 0, len(r.s.assets))
	for _, asset := range r.s.assets {
		if !asset.IsActive {
			continue
		}
		cp := *asset
		assets = append(assets, &cp)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID > assets[j].ID })
	return assets, nil
}

func (r *assetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[asset.ID]; !ok {
		return fmt.Errorf("asset %d not found", asset.ID)
	}
	cp := *asset
	r.s.assets[asset.ID] = &cp
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[id]; !ok {
		return fmt.Errorf("asset %d not found", id)
	}
	delete(r.s.assets, id)
	// Cascade like the orders.asset_id foreign key
	for orderID, order := range r.s.orders {
		if order.AssetID == id {
			delete(r.s.orders, orderID)
			delete(r.s.orderSeq, orderID)
		}
	}
	return nil
}

// ----- orders -----

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextOrder++
	r.s.orderSeq[order.ID] = r.s.nextOrder
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	cp := *order
	return &cp, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool { return true }, false), nil
}

func (r *orderRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool { return o.UserID == userID }, false), nil
}

func (r *orderRepo) GetByAssetID(ctx context.Context, assetID int64) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool { return o.AssetID == assetID }, false), nil
}

func (r *orderRepo) GetExecutedByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool {
		return o.UserID == userID && o.Status == domain.OrderStatusExecuted
	}, true), nil
}

func (r *orderRepo) Update(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return fmt.Errorf("order %s not found", order.ID)
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return fmt.Errorf("order %s not found", id)
	}
	delete(r.s.orders, id)
	delete(r.s.orderSeq, id)
	return nil
}

// collect returns matching orders sorted by insertion sequence,
// ascending (creation order) or descending (newest first).
func (r *orderRepo) collect(match func(*domain.Order) bool, ascending bool) []*domain.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := make([]*domain.Order, 0)
	for _, order := range r.s.orders {
		if match(order) {
			cp := *order
			orders = append(orders, &cp)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		a, b := r.s.orderSeq[orders[i].ID], r.s.orderSeq[orders[j].ID]
		if ascending {
			return a < b
		}
		return a > b
	})

	return orders
}
