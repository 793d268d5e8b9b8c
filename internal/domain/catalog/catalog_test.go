package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Filtro de óleo", "UN",
		decimal.RequireFromString("35.90"), decimal.RequireFromString("18.00"))
	require.NoError(t, err)
	assert.True(t, product.Active)
	assert.True(t, product.Stock.IsZero())
}

func TestNewProductValidation(t *testing.T) {
	companyID := uuid.New()

	_, err := NewProduct(companyID, "  ", "UN", decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewProduct(companyID, "Produto", "UN", decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)

	_, err = NewProduct(companyID, "Produto", "UN", decimal.Zero, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestProductDefaultUnit(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Produto", "", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "UN", product.Unit)
}

func TestProductApplyStockDelta(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Produto", "UN", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	product.ApplyStockDelta(decimal.NewFromInt(10))
	product.ApplyStockDelta(decimal.NewFromInt(-3))
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(7)))
}

func TestProductBelowMinimum(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Produto", "UN", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	product.MinStock = decimal.NewFromInt(5)

	product.ApplyStockDelta(decimal.NewFromInt(4))
	assert.True(t, product.BelowMinimum())

	product.ApplyStockDelta(decimal.NewFromInt(2))
	assert.False(t, product.BelowMinimum())
}

func TestNewService(t *testing.T) {
	service, err := NewService(uuid.New(), "Troca de óleo", decimal.RequireFromString("80.00"))
	require.NoError(t, err)
	assert.True(t, service.Active)

	service.Deactivate()
	assert.False(t, service.Active)

	_, err = NewService(uuid.New(), "", decimal.Zero)
	assert.Error(t, err)
}

func TestNewPackage(t *testing.T) {
	pkg, err := NewPackage(uuid.New(), "Revisão completa", decimal.RequireFromString("250.00"))
	require.NoError(t, err)

	pkg.ReplaceItems([]PackageItem{
		{ServiceID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		{ServiceID: uuid.New(), Quantity: decimal.NewFromInt(2)},
	})

	require.Len(t, pkg.Items, 2)
	for _, item := range pkg.Items {
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, pkg.ID, item.PackageID)
	}
}
