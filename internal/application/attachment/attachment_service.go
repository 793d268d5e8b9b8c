package attachment

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/attachment"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadRequest attaches a file to a document
type UploadRequest struct {
	OwnerType   string
	OwnerID     uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
}

// AttachmentService stores attachment blobs in object storage with a
// paired metadata row. The row is the source of truth: a blob without a
// row is garbage, a row without a blob is an error.
type AttachmentService struct {
	attachments attachment.AttachmentRepository
	storage     storage.ObjectStorage
	logger      *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachments attachment.AttachmentRepository, objectStorage storage.ObjectStorage, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{attachments: attachments, storage: objectStorage, logger: logger}
}

// Upload stores the blob and its metadata row
func (s *AttachmentService) Upload(ctx context.Context, companyID uuid.UUID, req UploadRequest) (*attachment.Attachment, error) {
	if !validOwnerType(req.OwnerType) {
		return nil, shared.NewDomainError("INVALID_OWNER_TYPE", "Unknown attachment owner type")
	}

	key := fmt.Sprintf("attachments/%s/%s/%s%s",
		strings.ToLower(req.OwnerType), req.OwnerID, uuid.New(), strings.ToLower(path.Ext(req.FileName)))

	record, err := attachment.NewAttachment(companyID, req.OwnerType, req.OwnerID, req.FileName, key, req.ContentType, int64(len(req.Data)))
	if err != nil {
		return nil, err
	}
	if err := s.storage.Upload(ctx, key, req.Data, req.ContentType); err != nil {
		return nil, err
	}
	if err := s.attachments.Save(ctx, record); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphan blob left after failed metadata write",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return record, nil
}

// ListByOwner returns a document's attachments
func (s *AttachmentService) ListByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) ([]attachment.Attachment, error) {
	if !validOwnerType(ownerType) {
		return nil, shared.NewDomainError("INVALID_OWNER_TYPE", "Unknown attachment owner type")
	}
	return s.attachments.FindByOwner(ctx, companyID, ownerType, ownerID)
}

// URL returns the public URL of an attachment's blob
func (s *AttachmentService) URL(ctx context.Context, companyID, id uuid.UUID) (string, error) {
	record, err := s.find(ctx, companyID, id)
	if err != nil {
		return "", err
	}
	return s.storage.PublicURL(record.StoragePath), nil
}

// Delete removes the metadata row and then the blob
func (s *AttachmentService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	record, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := s.attachments.DeleteForCompany(ctx, companyID, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, record.StoragePath); err != nil {
		s.logger.Warn("orphan blob left after attachment delete",
			zap.String("key", record.StoragePath), zap.Error(err))
	}
	return nil
}

// DeleteByOwner removes every attachment of a document, rows first
func (s *AttachmentService) DeleteByOwner(ctx context.Context, companyID uuid.UUID, ownerType string, ownerID uuid.UUID) error {
	records, err := s.attachments.FindByOwner(ctx, companyID, ownerType, ownerID)
	if err != nil {
		return err
	}
	if err := s.attachments.DeleteByOwner(ctx, companyID, ownerType, ownerID); err != nil {
		return err
	}
	for _, record := range records {
		if err := s.storage.Delete(ctx, record.StoragePath); err != nil {
			s.logger.Warn("orphan blob left after attachment delete",
				zap.String("key", record.StoragePath), zap.Error(err))
		}
	}
	return nil
}

func (s *AttachmentService) find(ctx context.Context, companyID, id uuid.UUID) (*attachment.Attachment, error) {
	record, err := s.attachments.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

func validOwnerType(ownerType string) bool {
	switch ownerType {
	case attachment.OwnerTypeClient, attachment.OwnerTypeProduct, attachment.OwnerTypeSalesOrder,
		attachment.OwnerTypeServiceOrder, attachment.OwnerTypeContract, attachment.OwnerTypeCompany:
		return true
	}
	return false
}
