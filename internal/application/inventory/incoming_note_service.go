package inventory

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IncomingNoteService handles supplier invoice entries. Posting a note
// writes its stock movements and deltas in one transaction.
type IncomingNoteService struct {
	notes    inventory.IncomingNoteRepository
	clients  partner.ClientRepository
	products catalog.ProductRepository
}

// NewIncomingNoteService creates a new IncomingNoteService
func NewIncomingNoteService(notes inventory.IncomingNoteRepository, clients partner.ClientRepository, products catalog.ProductRepository) *IncomingNoteService {
	return &IncomingNoteService{notes: notes, clients: clients, products: products}
}

// Create registers a draft note
func (s *IncomingNoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateIncomingNoteRequest) (*inventory.IncomingNote, error) {
	issuedAt := time.Now()
	if req.IssuedAt != nil {
		issuedAt = *req.IssuedAt
	}
	note, err := inventory.NewIncomingNote(companyID, req.Number, issuedAt)
	if err != nil {
		return nil, err
	}
	note.Notes = req.Notes

	if req.SupplierID != nil {
		supplier, err := s.clients.FindByIDForCompany(ctx, companyID, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
		}
		note.SupplierID = &supplier.ID
		note.SupplierName = supplier.Name
	}

	for _, in := range req.Items {
		product, err := s.products.FindByIDForCompany(ctx, companyID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		cost := product.Cost
		if in.UnitCost != nil {
			cost = *in.UnitCost
		}
		if err := note.AddItem(product.ID, product.Name, in.Quantity, cost); err != nil {
			return nil, err
		}
	}

	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update modifies a draft note; items replace the stored collection
func (s *IncomingNoteService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateIncomingNoteRequest) (*inventory.IncomingNote, error) {
	note, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if note.Status != inventory.IncomingNoteStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot change a posted note")
	}

	if req.Number != nil {
		note.Number = *req.Number
	}
	if req.IssuedAt != nil {
		note.IssuedAt = *req.IssuedAt
	}
	if req.SupplierID != nil {
		supplier, err := s.clients.FindByIDForCompany(ctx, companyID, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
		}
		note.SupplierID = &supplier.ID
		note.SupplierName = supplier.Name
	}
	if req.Notes != nil {
		note.Notes = *req.Notes
	}

	if req.Items != nil {
		note.Items = note.Items[:0]
		for _, in := range *req.Items {
			product, err := s.products.FindByIDForCompany(ctx, companyID, in.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
			}
			cost := product.Cost
			if in.UnitCost != nil {
				cost = *in.UnitCost
			}
			if err := note.AddItem(product.ID, product.Name, in.Quantity, cost); err != nil {
				return nil, err
			}
		}
	}
	note.Touch()

	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Post posts the note, applying one stock entry per line atomically.
// Posting twice is rejected.
func (s *IncomingNoteService) Post(ctx context.Context, companyID, id uuid.UUID) (*inventory.IncomingNote, error) {
	note, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	movements, err := note.Post()
	if err != nil {
		return nil, err
	}
	if err := s.notes.Post(ctx, note, movements); err != nil {
		return nil, err
	}
	return note, nil
}

// Get returns one note with items
func (s *IncomingNoteService) Get(ctx context.Context, companyID, id uuid.UUID) (*inventory.IncomingNote, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of notes
func (s *IncomingNoteService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.IncomingNote], error) {
	filter = filter.Normalize()
	items, err := s.notes.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.notes.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a draft note
func (s *IncomingNoteService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	note, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if note.Status != inventory.IncomingNoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a posted note")
	}
	return s.notes.DeleteForCompany(ctx, companyID, id)
}

func (s *IncomingNoteService) find(ctx context.Context, companyID, id uuid.UUID) (*inventory.IncomingNote, error) {
	note, err := s.notes.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, shared.ErrNotFound
	}
	return note, nil
}
