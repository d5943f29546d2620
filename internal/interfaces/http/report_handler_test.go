package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// recordingReportRepo captura los argumentos con que el handler invoca las
// consultas de reportes.
type recordingReportRepo struct {
	gotStart *time.Time
	gotEnd   *time.Time
}

func (r *recordingReportRepo) GetStockMovements(_ context.Context, _ string) (repository.StockMovementTotals, error) {
	return repository.StockMovementTotals{}, nil
}

func (r *recordingReportRepo) GetTopProducts(_ context.Context, _ string, _ int) ([]repository.ProductMovement, error) {
	return nil, nil
}

func (r *recordingReportRepo) GetTransactionsByDate(_ context.Context, _ string, start, end *time.Time) ([]repository.DateCount, error) {
	r.gotStart = start
	r.gotEnd = end
	return nil, nil
}

func (r *recordingReportRepo) GetLowStock(_ context.Context, _ string, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *recordingReportRepo) GetDashboardCounts(_ context.Context, _ string, _ int, _ time.Time) (repository.DashboardCounts, error) {
	return repository.DashboardCounts{}, nil
}

func (r *recordingReportRepo) GetProductValues(_ context.Context, _ string) ([]repository.ProductValue, error) {
	return nil, nil
}

func (r *recordingReportRepo) GetUserActivity(_ context.Context, _ string) ([]repository.UserActivity, error) {
	return nil, nil
}

func reportsApp(repo repository.ReportRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReportsUC: reports.NewReportsUseCase(repo, nil),
		Users:     loaderWith(entity.RoleAdmin),
		JWTSecret: testJWTSecret,
	})
	return app
}

// El rango de fechas llega por startDate/endDate; el final del rango es
// inclusivo (cubre hasta el último instante del día).
func TestTransactionsByDate_ParamsStartDateEndDate(t *testing.T) {
	repo := &recordingReportRepo{}
	app := reportsApp(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/transactions-by-date?startDate=2026-01-01&endDate=2026-01-31", nil)
	req.Header.Set("Authorization", tokenForRole(t, "Admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, repo.gotStart)
	require.NotNil(t, repo.gotEnd)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *repo.gotStart)
	assert.Equal(t, "2026-01-31", repo.gotEnd.Format("2006-01-02"),
		"el fin de rango debe caer dentro del último día pedido")
}

// Una fecha malformada corta con 400 antes de tocar el repositorio.
func TestTransactionsByDate_FechaInvalida(t *testing.T) {
	repo := &recordingReportRepo{}
	app := reportsApp(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/transactions-by-date?startDate=31-01-2026", nil)
	req.Header.Set("Authorization", tokenForRole(t, "Admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, repo.gotStart)
}
