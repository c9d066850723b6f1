package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdam-be-svc/internal/service"
	"pdam-be-svc/pkg/logger"
	"pdam-be-svc/pkg/utils"
)

// DashboardHandler handles manager dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	exportService    service.ExportService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, exportService service.ExportService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
		logger:           logger,
	}
}

// GetManagerDashboard handles GET /manager/dashboard
// @Summary Manager statistics dashboard
// @Description Aggregated revenue, customer count, bill status counts, water volume and unread complaints, plus the full bill list
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.DashboardResponse} "Dashboard retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /manager/dashboard [get]
func (h *DashboardHandler) GetManagerDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetManagerDashboard()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get manager dashboard")
		utils.InternalServerErrorResponse(c, "Failed to get dashboard", err)
		return
	}

	utils.SuccessResponse(c, "Dashboard ditemukan", dashboard)
}

// ExportTagihan handles GET /manager/dashboard/export
// @Summary Export the bill ledger to Excel
// @Description Download the bill ledger as an Excel workbook with optional period and status filters
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param bulan query string false "Filter by month name"
// @Param tahun query int false "Filter by year"
// @Param status query string false "Filter by payment status"
// @Success 200 {file} binary "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /manager/dashboard/export [get]
func (h *DashboardHandler) ExportTagihan(c *gin.Context) {
	var bulan *string
	if v := c.Query("bulan"); v != "" {
		bulan = &v
	}

	var tahun *int
	if v := c.Query("tahun"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid tahun parameter", err)
			return
		}
		tahun = &year
	}

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	content, filename, err := h.exportService.ExportTagihanToExcel(bulan, tahun, status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export tagihan")
		utils.InternalServerErrorResponse(c, "Failed to export tagihan", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
