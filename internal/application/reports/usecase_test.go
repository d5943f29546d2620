package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de ReportRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	movements     repository.StockMovementTotals
	topProducts   []repository.ProductMovement
	byDate        []repository.DateCount
	lowStock      []*entity.Product
	counts        repository.DashboardCounts
	values        []repository.ProductValue
	activity      []repository.UserActivity
	gotThreshold  int
	gotStart      *time.Time
	gotEnd        *time.Time
	gotRecentFrom time.Time
}

func (f *fakeReportRepo) GetStockMovements(_ context.Context, _ string) (repository.StockMovementTotals, error) {
	return f.movements, nil
}

func (f *fakeReportRepo) GetTopProducts(_ context.Context, _ string, limit int) ([]repository.ProductMovement, error) {
	if len(f.topProducts) > limit {
		return f.topProducts[:limit], nil
	}
	return f.topProducts, nil
}

func (f *fakeReportRepo) GetTransactionsByDate(_ context.Context, _ string, start, end *time.Time) ([]repository.DateCount, error) {
	f.gotStart, f.gotEnd = start, end
	return f.byDate, nil
}

func (f *fakeReportRepo) GetLowStock(_ context.Context, _ string, threshold int) ([]*entity.Product, error) {
	f.gotThreshold = threshold
	return f.lowStock, nil
}

func (f *fakeReportRepo) GetDashboardCounts(_ context.Context, _ string, lowStockThreshold int, recentSince time.Time) (repository.DashboardCounts, error) {
	f.gotThreshold = lowStockThreshold
	f.gotRecentFrom = recentSince
	return f.counts, nil
}

func (f *fakeReportRepo) GetProductValues(_ context.Context, _ string) ([]repository.ProductValue, error) {
	return f.values, nil
}

func (f *fakeReportRepo) GetUserActivity(_ context.Context, _ string) ([]repository.UserActivity, error) {
	return f.activity, nil
}

type fakePDFGenerator struct {
	got *reports.InventoryReportData
}

func (f *fakePDFGenerator) GenerateInventoryReport(data *reports.InventoryReportData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-fake"), nil
}

var testAuth = domain.AuthContext{UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockMovements_FormatoParaGraficas(t *testing.T) {
	repo := &fakeReportRepo{movements: repository.StockMovementTotals{StockIn: 120, StockOut: 45}}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})

	out, err := uc.StockMovements(context.Background(), testAuth)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Stock IN", out[0].Name)
	assert.Equal(t, 120, out[0].Value)
	assert.Equal(t, "Stock OUT", out[1].Name)
	assert.Equal(t, 45, out[1].Value)
}

func TestStockMovements_SinDatos_Ceros(t *testing.T) {
	uc := reports.NewReportsUseCase(&fakeReportRepo{}, &fakePDFGenerator{})

	out, err := uc.StockMovements(context.Background(), testAuth)
	require.NoError(t, err)
	require.Len(t, out, 2, "sin transacciones el reporte devuelve ambos segmentos en cero")
	assert.Equal(t, 0, out[0].Value)
	assert.Equal(t, 0, out[1].Value)
}

// La valorización del inventario es Σ cantidad × precio, redondeada a 2 decimales.
// Con cantidades 2, 15, 8 y precios 1, 2, 3: 2 + 30 + 24 = 56.00.
func TestDashboardSummary_ValorTotalDelStock(t *testing.T) {
	repo := &fakeReportRepo{
		counts: repository.DashboardCounts{
			TotalProducts: 3, TotalTransactions: 9, LowStockItems: 1, RecentTransactions: 4,
		},
		values: []repository.ProductValue{
			{Quantity: 2, Price: decimal.NewFromInt(1)},
			{Quantity: 15, Price: decimal.NewFromInt(2)},
			{Quantity: 8, Price: decimal.NewFromInt(3)},
		},
	}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})

	out, err := uc.DashboardSummary(context.Background(), testAuth)
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 9, out.TotalTransactions)
	assert.Equal(t, 1, out.LowStockItems)
	assert.Equal(t, 4, out.RecentTransactions)
	assert.Equal(t, "56.00", out.TotalStockValue.StringFixed(2))

	// La ventana de recientes es 7 días hacia atrás desde ahora.
	assert.WithinDuration(t, time.Now().Add(-7*24*time.Hour), repo.gotRecentFrom, 5*time.Second)
}

func TestDashboardSummary_RedondeaA2Decimales(t *testing.T) {
	repo := &fakeReportRepo{
		values: []repository.ProductValue{
			{Quantity: 3, Price: decimal.NewFromFloat(0.333)}, // 0.999
		},
	}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})

	out, err := uc.DashboardSummary(context.Background(), testAuth)
	require.NoError(t, err)
	assert.Equal(t, "1.00", out.TotalStockValue.StringFixed(2))
}

func TestLowStock_UmbralPorDefecto(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})
	ctx := context.Background()

	_, err := uc.LowStock(ctx, testAuth, 0)
	require.NoError(t, err)
	assert.Equal(t, reports.DefaultLowStockThreshold, repo.gotThreshold,
		"threshold <= 0 usa el umbral por defecto")

	_, err = uc.LowStock(ctx, testAuth, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.gotThreshold)
}

func TestTransactionsByDate_PropagaRango(t *testing.T) {
	repo := &fakeReportRepo{byDate: []repository.DateCount{
		{Date: "2026-08-01", Count: 3},
		{Date: "2026-08-02", Count: 1},
	}}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.TransactionsByDate(context.Background(), testAuth, &start, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2026-08-01", out[0].Date)
	assert.Equal(t, 3, out[0].Transactions)
	require.NotNil(t, repo.gotStart)
	assert.True(t, repo.gotStart.Equal(start))
	assert.Nil(t, repo.gotEnd)
}

func TestUserActivity_Mapeo(t *testing.T) {
	repo := &fakeReportRepo{activity: []repository.UserActivity{
		{UserID: "u1", Username: "ana", Role: entity.RoleAdmin, TransactionCount: 12},
		{UserID: "u2", Username: "beto", Role: entity.RoleStaff, TransactionCount: 5},
	}}
	uc := reports.NewReportsUseCase(repo, &fakePDFGenerator{})

	out, err := uc.UserActivity(context.Background(), testAuth)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ana", out[0].Username)
	assert.Equal(t, "Admin", out[0].Role)
	assert.Equal(t, 12, out[0].TransactionCount)
}

func TestExportPDF_ArmaElReporteCompleto(t *testing.T) {
	now := time.Now()
	repo := &fakeReportRepo{
		counts: repository.DashboardCounts{TotalProducts: 1},
		values: []repository.ProductValue{{Quantity: 2, Price: decimal.NewFromInt(10)}},
		lowStock: []*entity.Product{{
			ID: "p1", CompanyID: "c1", Name: "Tuercas", Category: "Ferretería",
			Quantity: 2, Price: decimal.NewFromInt(10), CreatedAt: now, UpdatedAt: now,
		}},
		topProducts: []repository.ProductMovement{{ProductID: "p1", Name: "Tuercas", Movements: 8}},
	}
	gen := &fakePDFGenerator{}
	uc := reports.NewReportsUseCase(repo, gen)

	pdf, err := uc.ExportPDF(context.Background(), testAuth, "Acme")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, gen.got)
	assert.Equal(t, "Acme", gen.got.CompanyName)
	require.NotNil(t, gen.got.Summary)
	assert.Equal(t, "20.00", gen.got.Summary.TotalStockValue.StringFixed(2))
	require.Len(t, gen.got.LowStock, 1)
	assert.Equal(t, "Tuercas", gen.got.LowStock[0].Name)
	require.Len(t, gen.got.TopProducts, 1)
	assert.Equal(t, 8, gen.got.TopProducts[0].Movements)
}
