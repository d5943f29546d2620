package reports

import "github.com/jhoicas/Almacen-api/internal/application/dto"

// PDFGenerator renderiza el reporte de inventario como documento PDF.
// La implementación concreta vive en infrastructure/pdf.
type PDFGenerator interface {
	GenerateInventoryReport(data *InventoryReportData) ([]byte, error)
}

// InventoryReportData datos agregados que consume el generador de PDF.
type InventoryReportData struct {
	CompanyName string
	Summary     *dto.DashboardSummaryDTO
	LowStock    []*dto.ProductResponse
	TopProducts []*dto.TopProductDTO
}
