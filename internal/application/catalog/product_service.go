package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
)

// ProductService handles the product catalog, including image blobs
type ProductService struct {
	products catalog.ProductRepository
	storage  storage.ObjectStorage
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, blobs storage.ObjectStorage) *ProductService {
	return &ProductService{products: products, storage: blobs}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, companyID uuid.UUID, req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(companyID, req.Name, req.Unit, req.Price, req.Cost)
	if err != nil {
		return nil, err
	}

	product.Code = req.Code
	product.Description = req.Description
	product.Stock = req.Stock
	product.MinStock = req.MinStock
	product.WeightKg = req.WeightKg
	product.NCM = req.NCM

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update modifies an existing product
func (s *ProductService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Unit != nil && *req.Unit != "" {
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Cost != nil {
		product.Cost = *req.Cost
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.WeightKg != nil {
		product.WeightKg = *req.WeightKg
	}
	if req.NCM != nil {
		product.NCM = *req.NCM
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	filter = filter.Normalize()
	items, err := s.products.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Search performs a free-text lookup used by order forms and the POS
func (s *ProductService) Search(ctx context.Context, companyID uuid.UUID, term string, limit int) ([]catalog.Product, error) {
	return s.products.SearchByName(ctx, companyID, term, limit)
}

// ListBelowMinimum returns products whose stock fell under the minimum
func (s *ProductService) ListBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	return s.products.FindBelowMinimum(ctx, companyID)
}

// UploadImage stores the image blob and records its path on the product
func (s *ProductService) UploadImage(ctx context.Context, companyID, id uuid.UUID, filename string, data []byte, contentType string) (*catalog.Product, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New(), strings.ToLower(path.Ext(filename)))
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	// single-column write so a concurrent full update cannot be clobbered
	previous := product.ImagePath
	if err := s.products.PatchForCompany(ctx, companyID, id, map[string]any{"imagePath": key}); err != nil {
		return nil, err
	}
	product.SetImagePath(key)
	if previous != "" {
		// best effort, the metadata row is already updated
		_ = s.storage.Delete(ctx, previous)
	}
	return product, nil
}

// ImageURL derives the public URL for the product image, empty when none
func (s *ProductService) ImageURL(product *catalog.Product) string {
	if product.ImagePath == "" {
		return ""
	}
	return s.storage.PublicURL(product.ImagePath)
}

// Delete removes a product; its image blob goes with it
func (s *ProductService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	product, err := s.products.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return shared.ErrNotFound
	}
	if err := s.products.DeleteForCompany(ctx, companyID, id); err != nil {
		return err
	}
	if product.ImagePath != "" {
		_ = s.storage.Delete(ctx, product.ImagePath)
	}
	return nil
}
