package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/shared/convention"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrudRepository implements shared.CompanyRepository for any entity carrying
// gorm tags. Entity-specific repositories embed it and add their queries.
type CrudRepository[T any] struct {
	db         *gorm.DB
	sortFields map[string]bool
}

// NewCrudRepository creates a generic repository. sortFields whitelists the
// columns FindAll may order by; nil falls back to the common base columns.
func NewCrudRepository[T any](db *gorm.DB, sortFields map[string]bool) *CrudRepository[T] {
	if sortFields == nil {
		sortFields = CommonSortFields
	}
	return &CrudRepository[T]{db: db, sortFields: sortFields}
}

// DB exposes the underlying connection for entity-specific queries
func (r *CrudRepository[T]) DB() *gorm.DB {
	return r.db
}

// FindByID finds an entity by ID, returning (nil, nil) when absent
func (r *CrudRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("Crud.FindByID", err)
	}
	return &entity, nil
}

// FindByIDForCompany finds an entity by ID scoped to a company
func (r *CrudRepository[T]) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateError("Crud.FindByIDForCompany", err)
	}
	return &entity, nil
}

// FindAll finds entities matching the filter
func (r *CrudRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := r.ApplyFilter(r.db.WithContext(ctx).Model(&model), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, TranslateError("Crud.FindAll", err)
	}
	return entities, nil
}

// FindAllForCompany finds entities for a company matching the filter
func (r *CrudRepository[T]) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := r.ApplyFilter(
		r.db.WithContext(ctx).Model(&model).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&entities).Error; err != nil {
		return nil, TranslateError("Crud.FindAllForCompany", err)
	}
	return entities, nil
}

// Save creates or updates the entity
func (r *CrudRepository[T]) Save(ctx context.Context, entity *T) error {
	return TranslateError("Crud.Save", r.db.WithContext(ctx).Save(entity).Error)
}

// Delete removes the entity by ID
func (r *CrudRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	return TranslateError("Crud.Delete", r.db.WithContext(ctx).Delete(&model, "id = ?", id).Error)
}

// Count counts entities matching the filter
func (r *CrudRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	var model T
	query := r.db.WithContext(ctx).Model(&model)
	if term := searchTerm(filter); term != "" {
		query = query.Where("name ILIKE ?", term)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, TranslateError("Crud.Count", err)
	}
	return count, nil
}

// CountForCompany counts the company's entities matching the filter
func (r *CrudRepository[T]) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	var model T
	query := r.db.WithContext(ctx).Model(&model).Where("company_id = ?", companyID)
	if term := searchTerm(filter); term != "" {
		query = query.Where("name ILIKE ?", term)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, TranslateError("Crud.CountForCompany", err)
	}
	return count, nil
}

// DeleteForCompany removes an entity scoped to a company
func (r *CrudRepository[T]) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	var model T
	return TranslateError("Crud.DeleteForCompany", r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&model).Error)
}

// Patch applies a partial update from a field map. Keys may use either the
// application convention (camelCase) or column names; identifier and
// timestamp keys are stripped and updated_at is stamped fresh.
func (r *CrudRepository[T]) Patch(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	var model T
	result := r.db.WithContext(ctx).
		Model(&model).
		Where("id = ?", id).
		Updates(patchColumns(fields))
	if result.Error != nil {
		return TranslateError("Crud.Patch", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PatchForCompany applies a partial update scoped to a company
func (r *CrudRepository[T]) PatchForCompany(ctx context.Context, companyID, id uuid.UUID, fields map[string]any) error {
	var model T
	result := r.db.WithContext(ctx).
		Model(&model).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(patchColumns(fields))
	if result.Error != nil {
		return TranslateError("Crud.PatchForCompany", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// patchColumns turns an application-convention field map into a column map
// safe to hand to Updates
func patchColumns(fields map[string]any) map[string]any {
	translated, _ := convention.ToSnake(fields).(map[string]any)
	if translated == nil {
		translated = map[string]any{}
	}
	delete(translated, "id")
	delete(translated, "company_id")
	delete(translated, "created_at")
	translated["updated_at"] = time.Now()
	return translated
}

// Paginate runs the query with pagination applied and returns a page plus
// the total count before paging
func (r *CrudRepository[T]) Paginate(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[T], error) {
	filter = filter.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, TranslateError("Crud.Paginate", err)
	}

	var entities []T
	err := query.
		Order(r.orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&entities).Error
	if err != nil {
		return nil, TranslateError("Crud.Paginate", err)
	}

	page := shared.NewPaginated(entities, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ApplyFilter applies search, ordering and pagination to a query
func (r *CrudRepository[T]) ApplyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter = filter.Normalize()
	if term := searchTerm(filter); term != "" {
		query = query.Where("name ILIKE ?", term)
	}
	return query.
		Order(r.orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize)
}

func (r *CrudRepository[T]) orderClause(filter shared.Filter) string {
	field := ValidateSortField(filter.OrderBy, r.sortFields, "created_at")
	return fmt.Sprintf("%s %s", field, ValidateSortOrder(filter.OrderDir))
}

func searchTerm(filter shared.Filter) string {
	term := strings.TrimSpace(filter.Search)
	if term == "" {
		return ""
	}
	return "%" + term + "%"
}
