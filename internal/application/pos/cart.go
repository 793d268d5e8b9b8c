package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product line in an operator's cart
type CartItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

// Total returns the line total
func (i CartItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// Cart is the in-memory sale an operator is building. Carts live per
// operator per company, expire after the configured idle window, and are
// torn down on sign-out or checkout.
type Cart struct {
	CompanyID  uuid.UUID  `json:"company_id"`
	OperatorID uuid.UUID  `json:"operator_id"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName string     `json:"client_name,omitempty"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Total sums the line totals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Total())
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type cartKey struct {
	companyID  uuid.UUID
	operatorID uuid.UUID
}

// cartStore holds the live carts. Access is serialized by a single mutex;
// cart churn is low enough that sharding would buy nothing.
type cartStore struct {
	mu    sync.Mutex
	carts map[cartKey]*Cart
	ttl   time.Duration
	now   func() time.Time
}

func newCartStore(ttl time.Duration) *cartStore {
	return &cartStore{
		carts: make(map[cartKey]*Cart),
		ttl:   ttl,
		now:   time.Now,
	}
}

// get returns the operator's live cart, creating a fresh one when absent
// or expired
func (s *cartStore) get(companyID, operatorID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(companyID, operatorID)
}

func (s *cartStore) getLocked(companyID, operatorID uuid.UUID) *Cart {
	key := cartKey{companyID: companyID, operatorID: operatorID}
	now := s.now()
	cart, ok := s.carts[key]
	if ok && now.Sub(cart.UpdatedAt) <= s.ttl {
		return cart
	}
	cart = &Cart{
		CompanyID:  companyID,
		OperatorID: operatorID,
		Items:      make([]CartItem, 0),
		UpdatedAt:  now,
	}
	s.carts[key] = cart
	return cart
}

// mutate runs fn against the operator's cart under the lock and stamps it
func (s *cartStore) mutate(companyID, operatorID uuid.UUID, fn func(cart *Cart) error) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.getLocked(companyID, operatorID)
	if err := fn(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = s.now()
	return cart, nil
}

// drop discards the operator's cart
func (s *cartStore) drop(companyID, operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey{companyID: companyID, operatorID: operatorID})
}

// prune removes expired carts; called opportunistically from drop paths
func (s *cartStore) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, cart := range s.carts {
		if now.Sub(cart.UpdatedAt) > s.ttl {
			delete(s.carts, key)
		}
	}
}
