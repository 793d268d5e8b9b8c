package trade

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/commission"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderService handles the sales order lifecycle. Invoicing an order
// writes the outgoing stock movements and, when a seller is assigned, the
// seller's commission.
type SalesOrderService struct {
	orders      trade.SalesOrderRepository
	clients     partner.ClientRepository
	sellers     partner.SellerRepository
	products    catalog.ProductRepository
	movements   inventory.MovementRepository
	commissions commission.CommissionRepository
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orders trade.SalesOrderRepository,
	clients partner.ClientRepository,
	sellers partner.SellerRepository,
	products catalog.ProductRepository,
	movements inventory.MovementRepository,
	commissions commission.CommissionRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orders:      orders,
		clients:     clients,
		sellers:     sellers,
		products:    products,
		movements:   movements,
		commissions: commissions,
	}
}

// Create opens a new sales order with a freshly allocated number
func (s *SalesOrderService) Create(ctx context.Context, companyID uuid.UUID, req CreateSalesOrderRequest) (*trade.SalesOrder, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client does not exist")
	}

	number, err := s.orders.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(companyID, number, client.ID, client.Name)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	for _, in := range req.Items {
		product, unitPrice, err := s.resolveProduct(ctx, companyID, in.ProductID, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddItem(product.ID, product.Name, in.Quantity, unitPrice, in.DiscountPercent, product.WeightKg); err != nil {
			return nil, err
		}
	}
	if err := order.SetAdjustments(req.Discount, req.Freight, req.ExtraCharges); err != nil {
		return nil, err
	}

	if req.SellerID != nil {
		seller, err := s.resolveSeller(ctx, companyID, *req.SellerID)
		if err != nil {
			return nil, err
		}
		order.AssignSeller(seller.ID, seller.Name)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update modifies an open sales order; items replace the stored collection
func (s *SalesOrderService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateSalesOrderRequest) (*trade.SalesOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		items := make([]trade.SalesOrderItem, 0, len(*req.Items))
		for _, in := range *req.Items {
			product, unitPrice, err := s.resolveProduct(ctx, companyID, in.ProductID, in.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, trade.SalesOrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        in.Quantity,
				UnitPrice:       unitPrice,
				DiscountPercent: in.DiscountPercent,
				WeightKg:        product.WeightKg,
			})
		}
		if err := order.ReplaceItems(items); err != nil {
			return nil, err
		}
	}

	discount := order.Discount
	freight := order.Freight
	extraCharges := order.ExtraCharges
	if req.Discount != nil {
		discount = *req.Discount
	}
	if req.Freight != nil {
		freight = *req.Freight
	}
	if req.ExtraCharges != nil {
		extraCharges = *req.ExtraCharges
	}
	if err := order.SetAdjustments(discount, freight, extraCharges); err != nil {
		return nil, err
	}

	if req.SellerID != nil {
		seller, err := s.resolveSeller(ctx, companyID, *req.SellerID)
		if err != nil {
			return nil, err
		}
		order.AssignSeller(seller.ID, seller.Name)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Invoice marks the order as invoiced, posts the outgoing stock movements
// and creates the seller's commission when one is assigned
func (s *SalesOrderService) Invoice(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Invoice(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		movement, err := inventory.NewMovement(companyID, item.ProductID, item.ProductName, inventory.MovementTypeOut, item.Quantity, time.Now())
		if err != nil {
			return nil, err
		}
		movement.SourceType = inventory.SourceTypeSale
		movement.SourceID = &order.ID
		movement.Reason = "Faturamento do pedido " + order.Number
		if err := s.movements.CreateAndApply(ctx, movement); err != nil {
			return nil, err
		}
	}

	if err := s.createCommission(ctx, companyID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Deliver marks an invoiced order as delivered
func (s *SalesOrderService) Deliver(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Deliver(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel cancels an order that was not delivered yet. Cancelling an already
// invoiced order puts the stock back and voids the pending commission.
func (s *SalesOrderService) Cancel(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	wasInvoiced := order.Status == trade.SalesOrderStatusInvoiced
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if wasInvoiced {
		for _, item := range order.Items {
			movement, err := inventory.NewMovement(companyID, item.ProductID, item.ProductName, inventory.MovementTypeIn, item.Quantity, time.Now())
			if err != nil {
				return nil, err
			}
			movement.SourceType = inventory.SourceTypeSale
			movement.SourceID = &order.ID
			movement.Reason = "Cancelamento do pedido " + order.Number
			if err := s.movements.CreateAndApply(ctx, movement); err != nil {
				return nil, err
			}
		}
		if err := s.voidCommission(ctx, companyID, order.ID); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Get returns one order with items
func (s *SalesOrderService) Get(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of orders
func (s *SalesOrderService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	filter = filter.Normalize()
	items, err := s.orders.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByStatus returns a page of orders in the given status
func (s *SalesOrderService) ListByStatus(ctx context.Context, companyID uuid.UUID, status trade.SalesOrderStatus, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown sales order status")
	}
	return s.orders.FindByStatus(ctx, companyID, status, filter.Normalize())
}

// ListByClient returns a page of the client's orders
func (s *SalesOrderService) ListByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	return s.orders.FindByClient(ctx, companyID, clientID, filter.Normalize())
}

// Delete removes an open order and its items
func (s *SalesOrderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !order.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Only open orders can be deleted")
	}
	return s.orders.DeleteForCompany(ctx, companyID, id)
}

func (s *SalesOrderService) find(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (s *SalesOrderService) resolveProduct(ctx context.Context, companyID, productID uuid.UUID, unitPrice *decimal.Decimal) (*catalog.Product, decimal.Decimal, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, productID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if product == nil {
		return nil, decimal.Zero, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}
	price := product.Price
	if unitPrice != nil {
		price = *unitPrice
	}
	return product, price, nil
}

func (s *SalesOrderService) resolveSeller(ctx context.Context, companyID, sellerID uuid.UUID) (*partner.Seller, error) {
	seller, err := s.sellers.FindByIDForCompany(ctx, companyID, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller does not exist")
	}
	return seller, nil
}

// voidCommission removes the order's commission unless it was already paid
// out, in which case the payout stands and the record is kept.
func (s *SalesOrderService) voidCommission(ctx context.Context, companyID, orderID uuid.UUID) error {
	existing, err := s.commissions.FindByOrder(ctx, companyID, orderID)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status == commission.CommissionStatusPaid {
		return nil
	}
	return s.commissions.DeleteForCompany(ctx, companyID, existing.ID)
}

// createCommission records the seller's cut of an invoiced order. Orders
// without a seller, zero-rate sellers and already commissioned orders are
// all skipped.
func (s *SalesOrderService) createCommission(ctx context.Context, companyID uuid.UUID, order *trade.SalesOrder) error {
	if order.SellerID == nil {
		return nil
	}
	seller, err := s.sellers.FindByIDForCompany(ctx, companyID, *order.SellerID)
	if err != nil {
		return err
	}
	if seller == nil || seller.CommissionPercent.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	existing, err := s.commissions.FindByOrder(ctx, companyID, order.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	c, err := commission.NewCommission(companyID, seller.ID, seller.Name, order.ID, order.Number, order.Total, seller.CommissionPercent)
	if err != nil {
		return err
	}
	return s.commissions.Save(ctx, c)
}
