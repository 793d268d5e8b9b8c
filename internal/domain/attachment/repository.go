package attachment

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttachmentRepository defines persistence operations for attachments
type AttachmentRepository interface {
	shared.CompanyRepository[Attachment]

	FindByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) ([]Attachment, error)
	DeleteByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) error
}
