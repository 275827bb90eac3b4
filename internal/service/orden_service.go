package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"rapifarma/internal/dto"
	"rapifarma/internal/repository"
	"rapifarma/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrdenService interface {
	AgregarItem(ctx context.Context, userID string, req dto.AgregarItemRequest) ([]store.OrdenItem, error)
	ActualizarCantidad(ctx context.Context, userID string, req dto.ActualizarCantidadRequest) ([]store.OrdenItem, error)
	EliminarItem(ctx context.Context, userID, listaID, farmacia string) ([]store.OrdenItem, error)
	Vaciar(ctx context.Context, userID string) error
	Agrupar(ctx context.Context, userID string) (*dto.OrdenCompraResponse, error)
}

type ordenService struct {
	carts     store.CartStore
	listaRepo repository.ListaRepository
}

func NewOrdenService(carts store.CartStore, listaRepo repository.ListaRepository) OrdenService {
	return &ordenService{carts: carts, listaRepo: listaRepo}
}

// ── Cart mutations ────────────────────────────────────────────────────────────
// Every mutation rewrites the whole cart; an empty cart clears the stored key.

// AgregarItem resolves the price-list line and merges it into the cart. The
// unique key is (lista_id, farmacia): re-adding increments cantidad instead
// of duplicating the line.
func (s *ordenService) AgregarItem(ctx context.Context, userID string, req dto.AgregarItemRequest) ([]store.OrdenItem, error) {
	listaID, err := uuid.Parse(req.ListaID)
	if err != nil {
		return nil, fmt.Errorf("lista_id inválido: %w", err)
	}
	lista, err := s.listaRepo.FindByID(ctx, listaID)
	if err != nil {
		return nil, errors.New("renglón de lista no encontrado")
	}

	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ListaID == req.ListaID && items[i].Farmacia == req.Farmacia {
			items[i].Cantidad += req.Cantidad
			merged = true
			break
		}
	}
	if !merged {
		proveedorID := ""
		if lista.ProveedorID != nil {
			proveedorID = lista.ProveedorID.String()
		}
		items = append(items, store.OrdenItem{
			ListaID:     req.ListaID,
			Farmacia:    req.Farmacia,
			ProveedorID: proveedorID,
			Codigo:      lista.Codigo,
			Descripcion: lista.Descripcion,
			PrecioNeto:  lista.PrecioNeto,
			Cantidad:    req.Cantidad,
		})
	}

	if err := s.carts.Set(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ActualizarCantidad sets a line's quantity; cantidad ≤ 0 removes the line.
func (s *ordenService) ActualizarCantidad(ctx context.Context, userID string, req dto.ActualizarCantidadRequest) ([]store.OrdenItem, error) {
	if req.Cantidad <= 0 {
		return s.EliminarItem(ctx, userID, req.ListaID, req.Farmacia)
	}

	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range items {
		if items[i].ListaID == req.ListaID && items[i].Farmacia == req.Farmacia {
			items[i].Cantidad = req.Cantidad
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New("renglón no está en la orden")
	}
	if err := s.carts.Set(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ordenService) EliminarItem(ctx context.Context, userID, listaID, farmacia string) ([]store.OrdenItem, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.ListaID == listaID && it.Farmacia == farmacia {
			continue
		}
		out = append(out, it)
	}
	if err := s.carts.Set(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ordenService) Vaciar(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// ── Agrupar ───────────────────────────────────────────────────────────────────

// Agrupar loads the cart and computes the display/export grouping.
func (s *ordenService) Agrupar(ctx context.Context, userID string) (*dto.OrdenCompraResponse, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := AgruparPorFarmacia(items)
	return &resp, nil
}

// AgruparPorFarmacia is the pure grouping: one group per distinct farmacia
// with its line items and total, plus a per-supplier nesting with subtotals
// for export/print. No item is double-counted or dropped:
// Σ(group totals) == Σ(precioNeto × cantidad) over all items.
func AgruparPorFarmacia(items []store.OrdenItem) dto.OrdenCompraResponse {
	porFarmacia := make(map[string][]store.OrdenItem)
	var orden []string
	for _, it := range items {
		if _, seen := porFarmacia[it.Farmacia]; !seen {
			orden = append(orden, it.Farmacia)
		}
		porFarmacia[it.Farmacia] = append(porFarmacia[it.Farmacia], it)
	}
	sort.Strings(orden)

	resp := dto.OrdenCompraResponse{TotalGeneral: decimal.Zero}
	for _, farmacia := range orden {
		grupo := dto.GrupoFarmaciaResponse{Farmacia: farmacia, Total: decimal.Zero}

		porProveedor := make(map[string][]store.OrdenItem)
		var provOrden []string
		for _, it := range porFarmacia[farmacia] {
			grupo.Items = append(grupo.Items, itemToResponse(it))
			grupo.Total = grupo.Total.Add(subtotal(it))
			if _, seen := porProveedor[it.ProveedorID]; !seen {
				provOrden = append(provOrden, it.ProveedorID)
			}
			porProveedor[it.ProveedorID] = append(porProveedor[it.ProveedorID], it)
		}
		sort.Strings(provOrden)

		for _, prov := range provOrden {
			sub := dto.GrupoProveedorResponse{ProveedorID: prov, Subtotal: decimal.Zero}
			for _, it := range porProveedor[prov] {
				sub.Items = append(sub.Items, itemToResponse(it))
				sub.Subtotal = sub.Subtotal.Add(subtotal(it))
			}
			grupo.Proveedores = append(grupo.Proveedores, sub)
		}

		resp.Grupos = append(resp.Grupos, grupo)
		resp.TotalGeneral = resp.TotalGeneral.Add(grupo.Total)
	}
	return resp
}

func subtotal(it store.OrdenItem) decimal.Decimal {
	return it.PrecioNeto.Mul(decimal.NewFromInt(int64(it.Cantidad)))
}

func itemToResponse(it store.OrdenItem) dto.OrdenItemResponse {
	return dto.OrdenItemResponse{
		ListaID:     it.ListaID,
		Farmacia:    it.Farmacia,
		ProveedorID: it.ProveedorID,
		Codigo:      it.Codigo,
		Descripcion: it.Descripcion,
		PrecioNeto:  it.PrecioNeto,
		Cantidad:    it.Cantidad,
		Subtotal:    subtotal(it),
	}
}
