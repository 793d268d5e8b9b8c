package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/attachment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements attachment.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	*CrudRepository[attachment.Attachment]
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{NewCrudRepository[attachment.Attachment](db, CommonSortFields)}
}

// FindByOwner lists the attachments of one record
func (r *GormAttachmentRepository) FindByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) ([]attachment.Attachment, error) {
	var attachments []attachment.Attachment
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND owner_type = ? AND owner_id = ?", companyID, ownerType, ownerID).
		Order("created_at asc").
		Find(&attachments).Error
	if err != nil {
		return nil, TranslateError("Attachment.FindByOwner", err)
	}
	return attachments, nil
}

// DeleteByOwner removes all attachment records of one record
func (r *GormAttachmentRepository) DeleteByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) error {
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND owner_type = ? AND owner_id = ?", companyID, ownerType, ownerID).
		Delete(&attachment.Attachment{}).Error
	return TranslateError("Attachment.DeleteByOwner", err)
}
