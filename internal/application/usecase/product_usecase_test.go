package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducts() *ProductUseCase {
	return NewProductUseCase(memory.NewStore().Lines())
}

func tornillo() dto.CreateProductLineRequest {
	return dto.CreateProductLineRequest{
		Name:         "Tornillo",
		Category:     "Ferretería",
		Unite:        "und",
		UnitPrice:    decimal.NewFromInt(250),
		CurrentStock: decimal.NewFromInt(40),
		MinStock:     decimal.NewFromInt(5),
	}
}

func TestProductCreate_InitialStockIgualAlStock(t *testing.T) {
	uc := newProducts()

	out, err := uc.Create(context.Background(), "u1", tornillo())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "u1", out.UserID)
	assert.True(t, out.InitialStock.Equal(decimal.NewFromInt(40)))
	assert.True(t, out.CurrentStock.Equal(out.InitialStock))
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProducts()

	_, err := uc.Create(context.Background(), "", tornillo())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	in := tornillo()
	in.UnitPrice = decimal.NewFromInt(-1)
	_, err = uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductOwnership(t *testing.T) {
	uc := newProducts()
	ctx := context.Background()
	created, err := uc.Create(ctx, "u1", tornillo())
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID(ctx, "", created.ID)
	assert.NoError(t, err, "admin ve todo")

	_, err = uc.GetByID(ctx, "u1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "u2", created.ID), domain.ErrForbidden)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	uc := newProducts()
	ctx := context.Background()
	created, err := uc.Create(ctx, "u1", tornillo())
	require.NoError(t, err)

	name := "Tornillo 1/4"
	price := decimal.NewFromInt(300)
	out, err := uc.Update(ctx, "u1", created.ID, dto.UpdateProductLineRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, out.UnitPrice.Equal(price))
	assert.True(t, out.CurrentStock.Equal(decimal.NewFromInt(40)))
}

func TestProductList_Paginacion(t *testing.T) {
	uc := newProducts()
	ctx := context.Background()
	for _, name := range []string{"C", "A", "B"} {
		in := tornillo()
		in.Name = name
		_, err := uc.Create(ctx, "u1", in)
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, "u2", tornillo())
	require.NoError(t, err)

	page, err := uc.List(ctx, "u1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "A", page.Items[0].Name)
	assert.Equal(t, "B", page.Items[1].Name)

	all, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
	assert.Equal(t, 20, all.Page.Limit)
}

func TestProductImport(t *testing.T) {
	uc := newProducts()
	ctx := context.Background()

	cemento := tornillo()
	cemento.Name = "Cemento"
	out, err := uc.Import(ctx, "u1", []dto.CreateProductLineRequest{tornillo(), cemento})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Created)

	list, err := uc.List(ctx, "u1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestProductImport_FilaInvalidaNoPersisteNada(t *testing.T) {
	uc := newProducts()
	ctx := context.Background()

	mala := tornillo()
	mala.CurrentStock = decimal.NewFromInt(-1)
	_, err := uc.Import(ctx, "u1", []dto.CreateProductLineRequest{tornillo(), mala})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, "u1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

type countingCache struct {
	passthroughCache
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestProductUpdateYDelete_InvalidanCache(t *testing.T) {
	cache := &countingCache{}
	uc := newProducts().WithCache(cache, zerolog.Nop())
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", tornillo())
	require.NoError(t, err)
	assert.Zero(t, cache.invalidations, "crear una línea sin movimientos no cambia la analítica")

	nombre := "Tornillo 1/4"
	_, err = uc.Update(ctx, "u1", created.ID, dto.UpdateProductLineRequest{Name: &nombre})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, "u1", created.ID))

	assert.Equal(t, 2, cache.invalidations)
}
