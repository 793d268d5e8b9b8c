package catalog

import (
	"context"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PackageService handles service packages
type PackageService struct {
	packages catalog.PackageRepository
}

// NewPackageService creates a new PackageService
func NewPackageService(packages catalog.PackageRepository) *PackageService {
	return &PackageService{packages: packages}
}

// Create registers a new package with its bundled services
func (s *PackageService) Create(ctx context.Context, companyID uuid.UUID, req CreatePackageRequest) (*catalog.Package, error) {
	pkg, err := catalog.NewPackage(companyID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	pkg.Description = req.Description
	pkg.ReplaceItems(packageItemsFromInput(req.Items))

	if err := s.packages.Save(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Update modifies a package; items replace the stored collection
func (s *PackageService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdatePackageRequest) (*catalog.Package, error) {
	pkg, err := s.packages.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
		}
		pkg.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		pkg.Price = *req.Price
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}
	if req.Items != nil {
		pkg.ReplaceItems(packageItemsFromInput(*req.Items))
	}

	if err := s.packages.Save(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Get returns one package with items
func (s *PackageService) Get(ctx context.Context, companyID, id uuid.UUID) (*catalog.Package, error) {
	pkg, err := s.packages.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, shared.ErrNotFound
	}
	return pkg, nil
}

// List returns a page of packages
func (s *PackageService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Package], error) {
	filter = filter.Normalize()
	items, err := s.packages.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.packages.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a package and its items
func (s *PackageService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.packages.DeleteForCompany(ctx, companyID, id)
}
