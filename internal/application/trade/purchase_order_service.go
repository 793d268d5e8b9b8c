package trade

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

// PurchaseOrderService handles the purchase order lifecycle. Receiving an
// order writes the incoming stock movements and can generate the supplier
// payable.
type PurchaseOrderService struct {
	orders    trade.PurchaseOrderRepository
	clients   partner.ClientRepository
	products  catalog.ProductRepository
	movements inventory.MovementRepository
	payables  finance.PayableRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orders trade.PurchaseOrderRepository,
	clients partner.ClientRepository,
	products catalog.ProductRepository,
	movements inventory.MovementRepository,
	payables finance.PayableRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:    orders,
		clients:   clients,
		products:  products,
		movements: movements,
		payables:  payables,
	}
}

// Create opens a new purchase order with a freshly allocated number
func (s *PurchaseOrderService) Create(ctx context.Context, companyID uuid.UUID, req CreatePurchaseOrderRequest) (*trade.PurchaseOrder, error) {
	supplier, err := s.clients.FindByIDForCompany(ctx, companyID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
	}
	if !supplier.IsSupplier {
		return nil, shared.NewDomainError("NOT_A_SUPPLIER", "Client is not registered as a supplier")
	}

	number, err := s.orders.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(companyID, number, supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes
	order.ExpectedAt = req.ExpectedAt

	for _, in := range req.Items {
		product, unitCost, err := s.resolveProduct(ctx, companyID, in.ProductID, in.UnitCost)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddItem(product.ID, product.Name, in.Quantity, unitCost, in.DiscountPercent, in.IPIPercent); err != nil {
			return nil, err
		}
	}
	if err := order.SetAdjustments(req.Discount, req.Freight, req.ExtraCharges); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update modifies an open purchase order; items replace the stored collection
func (s *PurchaseOrderService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdatePurchaseOrderRequest) (*trade.PurchaseOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		items := make([]trade.PurchaseOrderItem, 0, len(*req.Items))
		for _, in := range *req.Items {
			product, unitCost, err := s.resolveProduct(ctx, companyID, in.ProductID, in.UnitCost)
			if err != nil {
				return nil, err
			}
			items = append(items, trade.PurchaseOrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        in.Quantity,
				UnitCost:        unitCost,
				DiscountPercent: in.DiscountPercent,
				IPIPercent:      in.IPIPercent,
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

	if req.ExpectedAt != nil {
		order.ExpectedAt = req.ExpectedAt
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Receive confirms the order, posts the incoming stock movements and, when
// a due date is given, generates an open payable for the order total
func (s *PurchaseOrderService) Receive(ctx context.Context, companyID, id uuid.UUID, req ReceivePurchaseOrderRequest) (*trade.PurchaseOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Receive(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		movement, err := inventory.NewMovement(companyID, item.ProductID, item.ProductName, inventory.MovementTypeIn, item.Quantity, time.Now())
		if err != nil {
			return nil, err
		}
		movement.UnitCost = item.UnitCost
		movement.SourceType = inventory.SourceTypePurchase
		movement.SourceID = &order.ID
		movement.Reason = "Recebimento do pedido " + order.Number
		if err := s.movements.CreateAndApply(ctx, movement); err != nil {
			return nil, err
		}
	}

	if req.PayableDueDate != nil && order.Total.GreaterThan(decimal.Zero) {
		payable, err := finance.NewPayable(companyID, "Pedido de compra "+order.Number, order.Total, *req.PayableDueDate)
		if err != nil {
			return nil, err
		}
		payable.SupplierID = &order.SupplierID
		payable.Category = "Compras"
		payable.SourceType = finance.SourceTypePurchase
		payable.SourceID = &order.ID
		if err := s.payables.Save(ctx, payable); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Cancel cancels an order that was not received yet
func (s *PurchaseOrderService) Cancel(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns one order with items
func (s *PurchaseOrderService) Get(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of orders
func (s *PurchaseOrderService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.PurchaseOrder], error) {
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
func (s *PurchaseOrderService) ListByStatus(ctx context.Context, companyID uuid.UUID, status trade.PurchaseOrderStatus, filter shared.Filter) (*shared.Paginated[trade.PurchaseOrder], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
	}
	return s.orders.FindByStatus(ctx, companyID, status, filter.Normalize())
}

// ListBySupplier returns a page of the supplier's orders
func (s *PurchaseOrderService) ListBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.PurchaseOrder], error) {
	return s.orders.FindBySupplier(ctx, companyID, supplierID, filter.Normalize())
}

// Delete removes an open order and its items
func (s *PurchaseOrderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if order.Status != trade.PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open orders can be deleted")
	}
	return s.orders.DeleteForCompany(ctx, companyID, id)
}

func (s *PurchaseOrderService) find(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (s *PurchaseOrderService) resolveProduct(ctx context.Context, companyID, productID uuid.UUID, unitCost *decimal.Decimal) (*catalog.Product, decimal.Decimal, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, productID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if product == nil {
		return nil, decimal.Zero, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}
	cost := product.Cost
	if unitCost != nil {
		cost = *unitCost
	}
	return product, cost, nil
}
