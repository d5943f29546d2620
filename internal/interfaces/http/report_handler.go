package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CompanyLoader resuelve el nombre de la empresa para el encabezado del PDF.
type CompanyLoader interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// ReportHandler maneja los reportes agregados y la exportación en PDF.
type ReportHandler struct {
	uc        *reports.ReportsUseCase
	companies CompanyLoader
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportsUseCase, companies CompanyLoader) *ReportHandler {
	return &ReportHandler{uc: uc, companies: companies}
}

// StockMovements godoc
// @Summary      Totales IN vs OUT
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/reports/stock-movements [get]
func (h *ReportHandler) StockMovements(c *fiber.Ctx) error {
	out, err := h.uc.StockMovements(c.UserContext(), GetAuthContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con más movimiento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.UserContext(), GetAuthContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransactionsByDate godoc
// @Summary      Transacciones por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        endDate    query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200        {array}  dto.TransactionsByDateDTO
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/transactions-by-date [get]
func (h *ReportHandler) TransactionsByDate(c *fiber.Ctx) error {
	start, err := parseDateQuery(c.Query("startDate"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate debe ser YYYY-MM-DD"})
	}
	end, err := parseDateQuery(c.Query("endDate"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endDate debe ser YYYY-MM-DD"})
	}
	out, err := h.uc.TransactionsByDate(c.UserContext(), GetAuthContext(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock bajo"  default(10)
// @Success      200        {array}  dto.ProductResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", reports.DefaultLowStockThreshold)
	out, err := h.uc.LowStock(c.UserContext(), GetAuthContext(c), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard-summary [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardSummary(c.UserContext(), GetAuthContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UserActivity godoc
// @Summary      Actividad por usuario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserActivityDTO
// @Router       /api/reports/user-activity [get]
func (h *ReportHandler) UserActivity(c *fiber.Ctx) error {
	out, err := h.uc.UserActivity(c.UserContext(), GetAuthContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	authCtx := GetAuthContext(c)
	companyName := ""
	company, err := h.companies.GetByID(c.UserContext(), authCtx.CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if company != nil {
		companyName = company.Name
	}
	pdf, err := h.uc.ExportPDF(c.UserContext(), authCtx, companyName)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
	return c.Send(pdf)
}

// parseDateQuery interpreta una fecha YYYY-MM-DD opcional; endOfDay la lleva
// al último instante del día para que la cota superior sea inclusiva.
func parseDateQuery(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
