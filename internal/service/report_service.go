package service

import (
	"bytes"
	"fmt"
	"time"

	"go-suministros-api/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

type ReportService interface {
	ProductListPDF() ([]byte, error)
}

type reportService struct {
	productRepo repository.ProductRepository
}

func NewReportService(productRepo repository.ProductRepository) ReportService {
	return &reportService{productRepo: productRepo}
}

// ProductListPDF renders the current product list as a downloadable PDF,
// one row per product, flagging the ones below their stock threshold.
func (s *reportService) ProductListPDF() ([]byte, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Listado de Productos"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Generado: "+time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{55, 30, 25, 25, 25, 30}
	headers := []string{"Producto", "Referencia", "Precio", "Stock", "Objetivo", "Estado"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range products {
		reference := p.Reference
		if reference == "" {
			reference = "N/A"
		}
		status := "OK"
		if p.StockAlert() {
			status = "STOCK BAJO"
		}

		pdf.CellFormat(colWidths[0], 7, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, tr(reference), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, p.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, fmt.Sprintf("%d", p.Stock), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, fmt.Sprintf("%d", p.TargetStock), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 7, status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
