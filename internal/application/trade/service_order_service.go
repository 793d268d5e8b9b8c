package trade

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceOrderBoard groups the open service orders by kanban column
type ServiceOrderBoard struct {
	Columns []ServiceOrderColumn `json:"columns"`
}

// ServiceOrderColumn is one kanban column with its cards in order
type ServiceOrderColumn struct {
	Status trade.ServiceOrderStatus `json:"status"`
	Orders []trade.ServiceOrder     `json:"orders"`
}

// ServiceOrderService handles service orders and their kanban board
type ServiceOrderService struct {
	orders   trade.ServiceOrderRepository
	clients  partner.ClientRepository
	sellers  partner.SellerRepository
	services catalog.ServiceRepository
}

// NewServiceOrderService creates a new ServiceOrderService
func NewServiceOrderService(
	orders trade.ServiceOrderRepository,
	clients partner.ClientRepository,
	sellers partner.SellerRepository,
	services catalog.ServiceRepository,
) *ServiceOrderService {
	return &ServiceOrderService{orders: orders, clients: clients, sellers: sellers, services: services}
}

// Create opens a new service order in the quote column
func (s *ServiceOrderService) Create(ctx context.Context, companyID uuid.UUID, req CreateServiceOrderRequest) (*trade.ServiceOrder, error) {
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

	order, err := trade.NewServiceOrder(companyID, number, client.ID, client.Name)
	if err != nil {
		return nil, err
	}
	order.Description = req.Description
	order.Equipment = req.Equipment
	order.ReportedIssue = req.ReportedIssue
	order.DueAt = req.DueAt

	if req.SellerID != nil {
		seller, err := s.sellers.FindByIDForCompany(ctx, companyID, *req.SellerID)
		if err != nil {
			return nil, err
		}
		if seller == nil {
			return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller does not exist")
		}
		order.SellerID = &seller.ID
	}

	for _, in := range req.Items {
		svc, unitPrice, err := s.resolveService(ctx, companyID, in.ServiceID, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddItem(svc.ID, svc.Name, in.Quantity, unitPrice, in.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if err := order.SetDiscount(req.Discount); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update modifies a service order that has not reached a terminal stage
func (s *ServiceOrderService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateServiceOrderRequest) (*trade.ServiceOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot update a closed order")
	}

	if req.Items != nil {
		items := make([]trade.ServiceOrderItem, 0, len(*req.Items))
		for _, in := range *req.Items {
			svc, unitPrice, err := s.resolveService(ctx, companyID, in.ServiceID, in.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, trade.ServiceOrderItem{
				ServiceID:       svc.ID,
				ServiceName:     svc.Name,
				Quantity:        in.Quantity,
				UnitPrice:       unitPrice,
				DiscountPercent: in.DiscountPercent,
			})
		}
		if err := order.ReplaceItems(items); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := order.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}

	if req.SellerID != nil {
		seller, err := s.sellers.FindByIDForCompany(ctx, companyID, *req.SellerID)
		if err != nil {
			return nil, err
		}
		if seller == nil {
			return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller does not exist")
		}
		order.SellerID = &seller.ID
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.Equipment != nil {
		order.Equipment = *req.Equipment
	}
	if req.ReportedIssue != nil {
		order.ReportedIssue = *req.ReportedIssue
	}
	if req.TechnicalNotes != nil {
		order.TechnicalNotes = *req.TechnicalNotes
	}
	if req.DueAt != nil {
		order.DueAt = req.DueAt
	}
	order.Touch()

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Move drags the order to another kanban column. The change applies
// optimistically and rolls back in memory when persistence fails, so the
// returned order always matches the stored one.
func (s *ServiceOrderService) Move(ctx context.Context, companyID, id uuid.UUID, req MoveServiceOrderRequest) (*trade.ServiceOrder, error) {
	order, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	var moveErr error
	update := shared.OptimisticUpdate[trade.ServiceOrder]{
		Snapshot: func() trade.ServiceOrder { return *order },
		Apply: func() {
			moveErr = order.MoveTo(trade.ServiceOrderStatus(req.Status))
		},
		Commit: func(ctx context.Context) error {
			if moveErr != nil {
				return moveErr
			}
			return s.orders.Save(ctx, order)
		},
		Restore: func(snapshot trade.ServiceOrder) { *order = snapshot },
	}
	if _, err := update.Run(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// Board returns the open orders grouped into kanban columns. Finished and
// cancelled orders fall off the board.
func (s *ServiceOrderService) Board(ctx context.Context, companyID uuid.UUID) (*ServiceOrderBoard, error) {
	orders, err := s.orders.FindBoard(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stages := []trade.ServiceOrderStatus{
		trade.ServiceOrderStatusQuote,
		trade.ServiceOrderStatusOpen,
		trade.ServiceOrderStatusInProgress,
	}
	byStage := make(map[trade.ServiceOrderStatus][]trade.ServiceOrder, len(stages))
	for _, order := range orders {
		byStage[order.Status] = append(byStage[order.Status], order)
	}

	board := &ServiceOrderBoard{Columns: make([]ServiceOrderColumn, 0, len(stages))}
	for _, stage := range stages {
		column := ServiceOrderColumn{Status: stage, Orders: byStage[stage]}
		if column.Orders == nil {
			column.Orders = make([]trade.ServiceOrder, 0)
		}
		board.Columns = append(board.Columns, column)
	}
	return board, nil
}

// Get returns one order with items
func (s *ServiceOrderService) Get(ctx context.Context, companyID, id uuid.UUID) (*trade.ServiceOrder, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of orders
func (s *ServiceOrderService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.ServiceOrder], error) {
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

// ListByStatus returns a page of orders in a given column, archived ones
// included
func (s *ServiceOrderService) ListByStatus(ctx context.Context, companyID uuid.UUID, status trade.ServiceOrderStatus, filter shared.Filter) (*shared.Paginated[trade.ServiceOrder], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown service order status")
	}
	return s.orders.FindByStatus(ctx, companyID, status, filter.Normalize())
}

// Delete removes an order and its items
func (s *ServiceOrderService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.orders.DeleteForCompany(ctx, companyID, id)
}

func (s *ServiceOrderService) find(ctx context.Context, companyID, id uuid.UUID) (*trade.ServiceOrder, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (s *ServiceOrderService) resolveService(ctx context.Context, companyID, serviceID uuid.UUID, unitPrice *decimal.Decimal) (*catalog.Service, decimal.Decimal, error) {
	svc, err := s.services.FindByIDForCompany(ctx, companyID, serviceID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if svc == nil {
		return nil, decimal.Zero, shared.NewDomainError("SERVICE_NOT_FOUND", "Service does not exist")
	}
	price := svc.Price
	if unitPrice != nil {
		price = *unitPrice
	}
	return svc, price, nil
}
