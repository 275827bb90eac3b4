package infra

// pdf.go — purchase-order PDF rendering using go-pdf/fpdf.
// One page section per pharmacy group, items grouped by supplier with a
// subtotal per supplier and a grand total per pharmacy. The nested grouping
// is recomputed by the caller on demand — nothing here is cached.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"rapifarma/internal/dto"
)

// GenerateOrdenPDF writes the purchase-order document for the given grouping
// and returns the absolute path to the generated file.
func GenerateOrdenPDF(orden *dto.OrdenCompraResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_compra_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)

	for _, grupo := range orden.Grupos {
		pdf.AddPage()
		pageW, _ := pdf.GetPageSize()
		contentW := pageW - 24

		// ── Header ───────────────────────────────────────────────────────
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(contentW, 8, "Orden de Compra", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, fmt.Sprintf("Farmacia: %s", grupo.Farmacia), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		for _, prov := range grupo.Proveedores {
			proveedor := prov.ProveedorID
			if proveedor == "" {
				proveedor = "Sin proveedor"
			}
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(contentW, 6, fmt.Sprintf("Proveedor: %s", proveedor), "", 1, "L", false, 0, "")

			// ── Item table ───────────────────────────────────────────────
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(28, 5, "Código", "B", 0, "L", false, 0, "")
			pdf.CellFormat(contentW-28-22-28-28, 5, "Descripción", "B", 0, "L", false, 0, "")
			pdf.CellFormat(22, 5, "Cant.", "B", 0, "R", false, 0, "")
			pdf.CellFormat(28, 5, "Precio", "B", 0, "R", false, 0, "")
			pdf.CellFormat(28, 5, "Subtotal", "B", 1, "R", false, 0, "")

			pdf.SetFont("Helvetica", "", 8)
			for _, it := range prov.Items {
				pdf.CellFormat(28, 5, it.Codigo, "", 0, "L", false, 0, "")
				pdf.CellFormat(contentW-28-22-28-28, 5, it.Descripcion, "", 0, "L", false, 0, "")
				pdf.CellFormat(22, 5, fmt.Sprintf("%d", it.Cantidad), "", 0, "R", false, 0, "")
				pdf.CellFormat(28, 5, it.PrecioNeto.StringFixed(2), "", 0, "R", false, 0, "")
				pdf.CellFormat(28, 5, it.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
			}

			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(contentW-28, 6, "Subtotal proveedor", "T", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, prov.Subtotal.StringFixed(2), "T", 1, "R", false, 0, "")
			pdf.Ln(2)
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW-28, 8, "TOTAL FARMACIA", "T", 0, "R", false, 0, "")
		pdf.CellFormat(28, 8, grupo.Total.StringFixed(2), "T", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
