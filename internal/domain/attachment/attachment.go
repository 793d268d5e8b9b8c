package attachment

import (
	"path"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Owner document types an attachment can hang off
const (
	OwnerTypeClient       = "CLIENT"
	OwnerTypeProduct      = "PRODUCT"
	OwnerTypeSalesOrder   = "SALES_ORDER"
	OwnerTypeServiceOrder = "SERVICE_ORDER"
	OwnerTypeContract     = "CONTRACT"
	OwnerTypeCompany      = "COMPANY"
)

// maxSizeBytes caps uploads at 10 MB
const maxSizeBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {},
	".xml": {}, ".csv": {}, ".xlsx": {}, ".docx": {}, ".txt": {},
}

// Attachment is a file stored in object storage and linked to a document
type Attachment struct {
	shared.CompanyEntity
	OwnerType   string    `gorm:"size:40;not null;index:idx_attachments_owner" json:"owner_type"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_attachments_owner" json:"owner_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	StoragePath string    `gorm:"size:500;not null" json:"storage_path"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
}

// TableName returns the database table name
func (Attachment) TableName() string {
	return "attachments"
}

// NewAttachment creates an attachment record after validating name and size
func NewAttachment(companyID uuid.UUID, ownerType string, ownerID uuid.UUID, fileName, storagePath, contentType string, sizeBytes int64) (*Attachment, error) {
	if ownerType == "" {
		return nil, shared.NewDomainError("INVALID_OWNER_TYPE", "Owner type cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if fileName == "" || storagePath == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "File name and storage path are required")
	}
	if sizeBytes <= 0 || sizeBytes > maxSizeBytes {
		return nil, shared.NewDomainError("INVALID_SIZE", "File size must be between 1 byte and 10 MB")
	}
	ext := strings.ToLower(path.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, shared.NewDomainError("INVALID_EXTENSION", "File type is not allowed")
	}

	return &Attachment{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		OwnerType:     ownerType,
		OwnerID:       ownerID,
		FileName:      fileName,
		StoragePath:   storagePath,
		ContentType:   contentType,
		SizeBytes:     sizeBytes,
	}, nil
}
