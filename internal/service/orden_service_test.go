package service

import (
	"context"
	"errors"
	"testing"

	"rapifarma/internal/dto"
	"rapifarma/internal/model"
	"rapifarma/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory ListaRepository ────────────────────────────────────────────────

type fakeListaRepo struct {
	listas map[uuid.UUID]*model.ListaComparativa
	// failAfter aborts UpsertBatch mid-chunk when > 0
	failAfter int
	upserts   int
}

func newFakeListaRepo() *fakeListaRepo {
	return &fakeListaRepo{listas: make(map[uuid.UUID]*model.ListaComparativa)}
}

func (r *fakeListaRepo) UpsertBatch(_ context.Context, proveedorID uuid.UUID, rows []model.ListaComparativa) (int, error) {
	n := 0
	for i := range rows {
		if r.failAfter > 0 && r.upserts >= r.failAfter {
			return n, errors.New("db down")
		}
		rows[i].ProveedorID = &proveedorID
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		r.listas[rows[i].ID] = &rows[i]
		r.upserts++
		n++
	}
	return n, nil
}

func (r *fakeListaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ListaComparativa, error) {
	l, ok := r.listas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

func (r *fakeListaRepo) Search(_ context.Context, codigo, descripcion string, limit int) ([]model.ListaComparativa, error) {
	var out []model.ListaComparativa
	for _, l := range r.listas {
		out = append(out, *l)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeListaRepo) agregarLista(codigo, descripcion, precio string) *model.ListaComparativa {
	provID := uuid.New()
	l := &model.ListaComparativa{
		ID:          uuid.New(),
		ProveedorID: &provID,
		Codigo:      codigo,
		Descripcion: descripcion,
		PrecioNeto:  dec(precio),
	}
	r.listas[l.ID] = l
	return l
}

func newOrdenFixture() (OrdenService, *fakeListaRepo, store.CartStore) {
	repo := newFakeListaRepo()
	carts := store.NewMemoryCartStore()
	return NewOrdenService(carts, repo), repo, carts
}

// ── Cart mutations ───────────────────────────────────────────────────────────

func TestAgregarItemFusionaCantidad(t *testing.T) {
	svc, repo, _ := newOrdenFixture()
	lista := repo.agregarLista("A-01", "Acetaminofén 500mg", "12.50")

	items, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 2,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 3,
	})
	require.NoError(t, err)

	require.Len(t, items, 1, "mismo (lista, farmacia) no duplica el renglón")
	assert.Equal(t, 5, items[0].Cantidad)
}

func TestAgregarItemMismaListaOtraFarmacia(t *testing.T) {
	svc, repo, _ := newOrdenFixture()
	lista := repo.agregarLista("A-01", "Acetaminofén 500mg", "12.50")

	_, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 1,
	})
	require.NoError(t, err)
	items, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja2", Cantidad: 1,
	})
	require.NoError(t, err)

	assert.Len(t, items, 2, "la farmacia forma parte de la clave del renglón")
}

func TestAgregarItemListaInexistente(t *testing.T) {
	svc, _, _ := newOrdenFixture()

	_, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: uuid.NewString(), Farmacia: "caja1", Cantidad: 1,
	})
	assert.Error(t, err)
}

func TestActualizarCantidadCeroElimina(t *testing.T) {
	svc, repo, carts := newOrdenFixture()
	lista := repo.agregarLista("A-01", "Acetaminofén 500mg", "12.50")

	_, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 2,
	})
	require.NoError(t, err)

	items, err := svc.ActualizarCantidad(context.Background(), "user1", dto.ActualizarCantidadRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 0,
	})
	require.NoError(t, err)
	assert.Empty(t, items)

	stored, err := carts.Get(context.Background(), "user1")
	require.NoError(t, err)
	assert.Empty(t, stored, "el carrito vacío limpia la clave almacenada")
}

func TestActualizarCantidadRenglonAjeno(t *testing.T) {
	svc, _, _ := newOrdenFixture()

	_, err := svc.ActualizarCantidad(context.Background(), "user1", dto.ActualizarCantidadRequest{
		ListaID: uuid.NewString(), Farmacia: "caja1", Cantidad: 4,
	})
	assert.Error(t, err)
}

func TestVaciar(t *testing.T) {
	svc, repo, _ := newOrdenFixture()
	lista := repo.agregarLista("A-01", "Acetaminofén 500mg", "12.50")

	_, err := svc.AgregarItem(context.Background(), "user1", dto.AgregarItemRequest{
		ListaID: lista.ID.String(), Farmacia: "caja1", Cantidad: 2,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Vaciar(context.Background(), "user1"))

	resp, err := svc.Agrupar(context.Background(), "user1")
	require.NoError(t, err)
	assert.Empty(t, resp.Grupos)
	assert.True(t, resp.TotalGeneral.IsZero())
}

// ── Agrupación ───────────────────────────────────────────────────────────────

func itemsDemo() []store.OrdenItem {
	return []store.OrdenItem{
		{ListaID: "l1", Farmacia: "caja1", ProveedorID: "prov-a", Codigo: "A-01", PrecioNeto: dec("10"), Cantidad: 2},
		{ListaID: "l2", Farmacia: "caja1", ProveedorID: "prov-b", Codigo: "B-01", PrecioNeto: dec("5"), Cantidad: 4},
		{ListaID: "l3", Farmacia: "caja2", ProveedorID: "prov-a", Codigo: "A-02", PrecioNeto: dec("7.50"), Cantidad: 1},
	}
}

func TestAgruparPorFarmaciaConservaTotales(t *testing.T) {
	resp := AgruparPorFarmacia(itemsDemo())

	require.Len(t, resp.Grupos, 2)
	assert.Equal(t, "caja1", resp.Grupos[0].Farmacia)
	assert.Equal(t, "caja2", resp.Grupos[1].Farmacia)

	// caja1: 10×2 + 5×4 = 40; caja2: 7.50×1
	assert.True(t, resp.Grupos[0].Total.Equal(dec("40")))
	assert.True(t, resp.Grupos[1].Total.Equal(dec("7.5")))
	assert.True(t, resp.TotalGeneral.Equal(dec("47.5")))

	// Ningún renglón se duplica ni se pierde al reagrupar
	totalItems := 0
	for _, g := range resp.Grupos {
		totalItems += len(g.Items)
		sumaProveedores := decimal.Zero
		for _, p := range g.Proveedores {
			sumaProveedores = sumaProveedores.Add(p.Subtotal)
		}
		assert.True(t, sumaProveedores.Equal(g.Total), "Σ subtotales por proveedor == total de la farmacia")
	}
	assert.Equal(t, 3, totalItems)
}

func TestAgruparPorFarmaciaAnidaProveedores(t *testing.T) {
	resp := AgruparPorFarmacia(itemsDemo())

	caja1 := resp.Grupos[0]
	require.Len(t, caja1.Proveedores, 2)
	assert.Equal(t, "prov-a", caja1.Proveedores[0].ProveedorID)
	assert.True(t, caja1.Proveedores[0].Subtotal.Equal(dec("20")))
	assert.Equal(t, "prov-b", caja1.Proveedores[1].ProveedorID)
	assert.True(t, caja1.Proveedores[1].Subtotal.Equal(dec("20")))
}

func TestAgruparPorFarmaciaVacio(t *testing.T) {
	resp := AgruparPorFarmacia(nil)
	assert.Empty(t, resp.Grupos)
	assert.True(t, resp.TotalGeneral.IsZero())
}
