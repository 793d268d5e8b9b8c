package attachment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachment(t *testing.T) {
	a, err := NewAttachment(uuid.New(), OwnerTypeClient, uuid.New(),
		"contrato.pdf", "company/x/contrato.pdf", "application/pdf", 2048)
	require.NoError(t, err)
	assert.Equal(t, "contrato.pdf", a.FileName)
}

func TestNewAttachmentValidation(t *testing.T) {
	companyID := uuid.New()
	ownerID := uuid.New()

	_, err := NewAttachment(companyID, "", ownerID, "a.pdf", "p", "application/pdf", 10)
	assert.Error(t, err)

	_, err = NewAttachment(companyID, OwnerTypeClient, uuid.Nil, "a.pdf", "p", "application/pdf", 10)
	assert.Error(t, err)

	_, err = NewAttachment(companyID, OwnerTypeClient, ownerID, "", "p", "application/pdf", 10)
	assert.Error(t, err)

	_, err = NewAttachment(companyID, OwnerTypeClient, ownerID, "a.pdf", "p", "application/pdf", 0)
	assert.Error(t, err)

	// over the 10 MB cap
	_, err = NewAttachment(companyID, OwnerTypeClient, ownerID, "a.pdf", "p", "application/pdf", 11<<20)
	assert.Error(t, err)

	// executable extensions are rejected
	_, err = NewAttachment(companyID, OwnerTypeClient, ownerID, "virus.exe", "p", "application/octet-stream", 10)
	assert.Error(t, err)
}
