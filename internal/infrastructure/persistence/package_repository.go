package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPackageRepository implements catalog.PackageRepository using GORM
type GormPackageRepository struct {
	*CrudRepository[catalog.Package]
}

// NewGormPackageRepository creates a new GormPackageRepository
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{NewCrudRepository[catalog.Package](db, NameSortFields)}
}

// Save persists the package and replaces its item collection in one
// transaction
func (r *GormPackageRepository) Save(ctx context.Context, pkg *catalog.Package) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(pkg).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&catalog.PackageItem{}).Error; err != nil {
			return err
		}
		if len(pkg.Items) == 0 {
			return nil
		}
		for i := range pkg.Items {
			pkg.Items[i].PackageID = pkg.ID
		}
		return tx.Create(&pkg.Items).Error
	})
	return TranslateError("Package.Save", err)
}

// FindByIDForCompany loads the package with its items
func (r *GormPackageRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*catalog.Package, error) {
	var pkg catalog.Package
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&pkg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("Package.FindByIDForCompany", err)
	}
	return &pkg, nil
}

// DeleteForCompany removes the package and its items
func (r *GormPackageRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&catalog.PackageItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&catalog.Package{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return TranslateError("Package.DeleteForCompany", err)
}
