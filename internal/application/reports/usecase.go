package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	// DefaultLowStockThreshold umbral por defecto para considerar stock bajo.
	DefaultLowStockThreshold = 10
	// defaultTopProducts cantidad de productos del ranking de movimiento.
	defaultTopProducts = 5
	// recentWindow ventana de "transacciones recientes" del dashboard.
	recentWindow = 7 * 24 * time.Hour
)

// ReportsUseCase agregados de solo lectura sobre el ledger y el catálogo.
// Todos los reportes se calculan al momento de la llamada, sin caché.
type ReportsUseCase struct {
	repo repository.ReportRepository
	pdf  PDFGenerator
}

// NewReportsUseCase construye el caso de uso de reportes.
func NewReportsUseCase(repo repository.ReportRepository, pdf PDFGenerator) *ReportsUseCase {
	return &ReportsUseCase{repo: repo, pdf: pdf}
}

// StockMovements totales IN vs OUT de la empresa, en formato para gráficas.
func (uc *ReportsUseCase) StockMovements(ctx context.Context, auth domain.AuthContext) ([]*dto.StockMovementDTO, error) {
	totals, err := uc.repo.GetStockMovements(ctx, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	return []*dto.StockMovementDTO{
		{Name: "Stock IN", Value: totals.StockIn},
		{Name: "Stock OUT", Value: totals.StockOut},
	}, nil
}

// TopProducts ranking de productos por volumen de movimiento (IN + OUT).
func (uc *ReportsUseCase) TopProducts(ctx context.Context, auth domain.AuthContext) ([]*dto.TopProductDTO, error) {
	rows, err := uc.repo.GetTopProducts(ctx, auth.CompanyID, defaultTopProducts)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.TopProductDTO{Name: r.Name, Movements: r.Movements})
	}
	return out, nil
}

// TransactionsByDate conteo de transacciones por día UTC, ascendente.
// start/end nil significa sin cota en ese extremo.
func (uc *ReportsUseCase) TransactionsByDate(ctx context.Context, auth domain.AuthContext, start, end *time.Time) ([]*dto.TransactionsByDateDTO, error) {
	rows, err := uc.repo.GetTransactionsByDate(ctx, auth.CompanyID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionsByDateDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.TransactionsByDateDTO{Date: r.Date, Transactions: r.Count})
	}
	return out, nil
}

// LowStock productos con cantidad <= threshold, ascendente por cantidad.
// threshold <= 0 usa el umbral por defecto.
func (uc *ReportsUseCase) LowStock(ctx context.Context, auth domain.AuthContext, threshold int) ([]*dto.ProductResponse, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	products, err := uc.repo.GetLowStock(ctx, auth.CompanyID, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// DashboardSummary conteos del dashboard más la valorización total del stock
// (suma de cantidad x precio por producto, redondeada a 2 decimales).
// "Recientes" = últimos 7 días. Abierto a todos los roles.
func (uc *ReportsUseCase) DashboardSummary(ctx context.Context, auth domain.AuthContext) (*dto.DashboardSummaryDTO, error) {
	since := time.Now().Add(-recentWindow)
	counts, err := uc.repo.GetDashboardCounts(ctx, auth.CompanyID, DefaultLowStockThreshold, since)
	if err != nil {
		return nil, err
	}
	values, err := uc.repo.GetProductValues(ctx, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.Price.Mul(decimal.NewFromInt(int64(v.Quantity))))
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts:      counts.TotalProducts,
		TotalTransactions:  counts.TotalTransactions,
		LowStockItems:      counts.LowStockItems,
		RecentTransactions: counts.RecentTransactions,
		TotalStockValue:    total.Round(2),
	}, nil
}

// UserActivity conteo de transacciones por usuario, descendente por actividad.
func (uc *ReportsUseCase) UserActivity(ctx context.Context, auth domain.AuthContext) ([]*dto.UserActivityDTO, error) {
	rows, err := uc.repo.GetUserActivity(ctx, auth.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserActivityDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.UserActivityDTO{
			Username:         r.Username,
			Role:             string(r.Role),
			TransactionCount: r.TransactionCount,
		})
	}
	return out, nil
}

// ExportPDF arma el reporte de inventario (resumen + stock bajo + top
// productos) y lo entrega como PDF.
func (uc *ReportsUseCase) ExportPDF(ctx context.Context, auth domain.AuthContext, companyName string) ([]byte, error) {
	summary, err := uc.DashboardSummary(ctx, auth)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.LowStock(ctx, auth, DefaultLowStockThreshold)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.TopProducts(ctx, auth)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryReport(&InventoryReportData{
		CompanyName: companyName,
		Summary:     summary,
		LowStock:    lowStock,
		TopProducts: topProducts,
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
