package pos

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds or tops up a product line in the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SetCartClientRequest attaches the buyer to the cart
type SetCartClientRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
}

// CheckoutRequest closes the sale
type CheckoutRequest struct {
	Discount string          `json:"discount" binding:"max=20"`
	Notes    string          `json:"notes"`
	Payment  decimal.Decimal `json:"payment"`
}

// CheckoutResult is the closed sale plus the change due
type CheckoutResult struct {
	Order  *trade.SalesOrder `json:"order"`
	Change decimal.Decimal   `json:"change"`
}

// PosService runs the point of sale. Each operator builds an in-memory
// cart; checkout turns it into an invoiced sales order, an inflow ledger
// entry and the outgoing stock movements.
type PosService struct {
	carts     *cartStore
	orders    trade.SalesOrderRepository
	clients   partner.ClientRepository
	products  catalog.ProductRepository
	movements inventory.MovementRepository
	ledger    finance.CashFlowRepository
}

// NewPosService creates a new PosService. cartTTL bounds how long an idle
// cart survives.
func NewPosService(
	cartTTL time.Duration,
	orders trade.SalesOrderRepository,
	clients partner.ClientRepository,
	products catalog.ProductRepository,
	movements inventory.MovementRepository,
	ledger finance.CashFlowRepository,
) *PosService {
	return &PosService{
		carts:     newCartStore(cartTTL),
		orders:    orders,
		clients:   clients,
		products:  products,
		movements: movements,
		ledger:    ledger,
	}
}

// Cart returns the operator's live cart
func (s *PosService) Cart(companyID, operatorID uuid.UUID) *Cart {
	return s.carts.get(companyID, operatorID)
}

// AddItem adds a product to the cart, merging with an existing line
func (s *PosService) AddItem(ctx context.Context, companyID, operatorID uuid.UUID, req AddCartItemRequest) (*Cart, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	product, err := s.products.FindByIDForCompany(ctx, companyID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}
	price := product.Price
	if req.UnitPrice != nil {
		price = *req.UnitPrice
	}

	return s.carts.mutate(companyID, operatorID, func(cart *Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				cart.Items[i].Quantity = cart.Items[i].Quantity.Add(req.Quantity)
				cart.Items[i].UnitPrice = price
				return nil
			}
		}
		cart.Items = append(cart.Items, CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   price,
			WeightKg:    product.WeightKg,
		})
		return nil
	})
}

// UpdateItemQuantity sets a line's quantity; zero removes the line
func (s *PosService) UpdateItemQuantity(companyID, operatorID, productID uuid.UUID, quantity decimal.Decimal) (*Cart, error) {
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return s.carts.mutate(companyID, operatorID, func(cart *Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID != productID {
				continue
			}
			if quantity.IsZero() {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return nil
		}
		return shared.ErrNotFound
	})
}

// SetClient attaches the buyer to the cart
func (s *PosService) SetClient(ctx context.Context, companyID, operatorID uuid.UUID, req SetCartClientRequest) (*Cart, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client does not exist")
	}
	return s.carts.mutate(companyID, operatorID, func(cart *Cart) error {
		cart.ClientID = &client.ID
		cart.ClientName = client.Name
		return nil
	})
}

// Clear discards the operator's cart; called on sign-out
func (s *PosService) Clear(companyID, operatorID uuid.UUID) {
	s.carts.drop(companyID, operatorID)
	s.carts.prune()
}

// Checkout closes the sale: the cart becomes an invoiced sales order, the
// payment lands in the ledger and each line leaves stock. The cart is
// dropped on success.
func (s *PosService) Checkout(ctx context.Context, companyID, operatorID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	cart := s.carts.get(companyID, operatorID)
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}
	if cart.ClientID == nil {
		return nil, shared.NewDomainError("NO_CLIENT", "Cart has no client attached")
	}

	number, err := s.orders.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}
	order, err := trade.NewSalesOrder(companyID, number, *cart.ClientID, cart.ClientName)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes
	for _, item := range cart.Items {
		if _, err := order.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, decimal.Zero, item.WeightKg); err != nil {
			return nil, err
		}
	}
	if err := order.SetAdjustments(req.Discount, decimal.Zero, decimal.Zero); err != nil {
		return nil, err
	}
	if !req.Payment.IsZero() && req.Payment.LessThan(order.Total) {
		return nil, shared.NewDomainError("INSUFFICIENT_PAYMENT", "Payment does not cover the sale total")
	}
	if err := order.Invoice(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	now := time.Now()
	for _, item := range order.Items {
		movement, err := inventory.NewMovement(companyID, item.ProductID, item.ProductName, inventory.MovementTypeOut, item.Quantity, now)
		if err != nil {
			return nil, err
		}
		movement.SourceType = inventory.SourceTypePOS
		movement.SourceID = &order.ID
		movement.Reason = "Venda PDV " + order.Number
		if err := s.movements.CreateAndApply(ctx, movement); err != nil {
			return nil, err
		}
	}

	entry, err := finance.NewCashFlowEntry(companyID, finance.CashFlowTypeIn, "Venda PDV "+order.Number, order.Total, now)
	if err != nil {
		return nil, err
	}
	entry.Category = "Vendas"
	entry.SourceType = finance.SourceTypePOS
	entry.SourceID = &order.ID
	if err := s.ledger.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.carts.drop(companyID, operatorID)

	change := decimal.Zero
	if !req.Payment.IsZero() {
		change = req.Payment.Sub(order.Total)
	}
	return &CheckoutResult{Order: order, Change: change}, nil
}
