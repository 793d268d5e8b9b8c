package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	*CrudRepository[partner.Client]
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{NewCrudRepository[partner.Client](db, NameSortFields)}
}

// Save persists the client and replaces its contact collection in one
// transaction
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return TranslateError("Client.Save", r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&partner.ContactPerson{}).Error; err != nil {
			return err
		}
		if len(client.Contacts) > 0 {
			if err := tx.Create(&client.Contacts).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// FindByIDForCompany loads the client with its contacts
func (r *GormClientRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	err := r.DB().WithContext(ctx).
		Preload("Contacts").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("Client.FindByIDForCompany", err)
	}
	return &client, nil
}

// SearchByName finds active clients whose name or trade name matches,
// optionally restricted to suppliers
func (r *GormClientRepository) SearchByName(ctx context.Context, companyID uuid.UUID, name string, supplierOnly bool, limit int) ([]partner.Client, error) {
	if limit <= 0 {
		limit = 10
	}
	query := r.DB().WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Where("name ILIKE ? OR trade_name ILIKE ?", "%"+name+"%", "%"+name+"%")
	if supplierOnly {
		query = query.Where("is_supplier = true")
	}

	var clients []partner.Client
	if err := query.Order("name asc").Limit(limit).Find(&clients).Error; err != nil {
		return nil, TranslateError("Client.SearchByName", err)
	}
	return clients, nil
}

// DeleteForCompany removes a client and its contacts
func (r *GormClientRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return TranslateError("Client.DeleteForCompany", r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&partner.ContactPerson{}).Error; err != nil {
			return err
		}
		return tx.Where("company_id = ? AND id = ?", companyID, id).
			Delete(&partner.Client{}).Error
	}))
}
