package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	products map[string]*Product
}

func newMockRepository() *mockRepository {
	return &mockRepository{products: make(map[string]*Product)}
}

func (m *mockRepository) Create(_ context.Context, p *Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (m *mockRepository) List(_ context.Context, category string, activeOnly bool) ([]*Product, error) {
	var out []*Product
	for _, p := range m.products {
		if category != "" && p.Category != category {
			continue
		}
		if activeOnly && p.Status != StatusActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, p *Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	svc := NewService(newMockRepository())

	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Tisane Détox", Price: 15000, Category: "Infusions", Stock: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusActive, p.Status)
	assert.NotEqual(t, "", p.ID.String())
}

func TestCreateProductRejectsMissingFields(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.CreateProduct(context.Background(), ProductRequest{Price: 100})
	assert.Error(t, err)

	_, err = svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Savon Noir", Category: "Soins", Price: -1,
	})
	assert.Error(t, err)
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Savon Noir", Price: 3500, Category: "Soins",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), p.ID.String(), "inactive")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), p.ID.String(), "archived")
	assert.Error(t, err)
}

func TestListProductsFiltersInactiveByDefault(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	active, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Tisane Détox", Price: 15000, Category: "Infusions",
	})
	require.NoError(t, err)
	hidden, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Ancienne Gamme", Price: 1000, Category: "Soins",
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), hidden.ID.String(), "inactive")
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)

	all, err := svc.ListProducts(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateProductUnknownIDFails(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.UpdateProduct(context.Background(), "3f6e8f0e-0000-0000-0000-000000000000", ProductRequest{
		Name: "Huile d'Argan", Price: 8000, Category: "Huiles",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
