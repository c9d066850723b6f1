package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pdam-be-svc/internal/middleware"
	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/service"
	"pdam-be-svc/pkg/logger"
	"pdam-be-svc/pkg/utils"
)

// TagihanHandler handles billing HTTP requests
type TagihanHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewTagihanHandler creates a new tagihan handler
func NewTagihanHandler(billingService service.BillingService, logger *logger.Logger) *TagihanHandler {
	return &TagihanHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// CreateTagihanRequest represents the bill creation request body
type CreateTagihanRequest struct {
	UserID     uint   `json:"user_id" binding:"required" example:"1"`
	Bulan      string `json:"bulan" binding:"required" example:"Januari"`
	Tahun      int    `json:"tahun" binding:"required" example:"2024"`
	MeterAwal  int    `json:"meter_awal" binding:"min=0" example:"100"`
	MeterAkhir int    `json:"meter_akhir" binding:"min=0" example:"150"`
}

// VerifikasiRequest represents the verification decision request body
type VerifikasiRequest struct {
	Aksi string `json:"aksi" binding:"required,oneof=TERIMA TOLAK" example:"TERIMA"`
}

// CreateTagihan handles POST /tagihan
// @Summary Create a monthly bill
// @Description Kasir records meter readings for a customer; total is usage times the configured tariff
// @Tags tagihan
// @Accept json
// @Produce json
// @Param request body CreateTagihanRequest true "Bill payload"
// @Success 201 {object} utils.APIResponse{data=models.Tagihan} "Bill created"
// @Failure 400 {object} utils.APIResponse "Invalid request body or meter readings"
// @Failure 409 {object} utils.APIResponse "Bill already exists for this period"
// @Security BearerAuth
// @Router /tagihan [post]
func (h *TagihanHandler) CreateTagihan(c *gin.Context) {
	var req CreateTagihanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	tagihan, err := h.billingService.CreateTagihan(service.CreateTagihanInput{
		UserID:     req.UserID,
		Bulan:      req.Bulan,
		Tahun:      req.Tahun,
		MeterAwal:  req.MeterAwal,
		MeterAkhir: req.MeterAkhir,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTagihan) {
			utils.ConflictResponse(c, "Tagihan bulan ini sudah ada")
			return
		}
		if errors.Is(err, service.ErrInvalidMeterReading) {
			utils.BadRequestResponse(c, "Meter akhir tidak boleh lebih kecil dari meter awal", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to create tagihan")
		utils.InternalServerErrorResponse(c, "Failed to create tagihan", err)
		return
	}

	utils.CreatedResponse(c, "Tagihan berhasil dibuat", tagihan)
}

// GetTagihanByUser handles GET /tagihan/user/:userId
// @Summary List a customer's bills
// @Description Get all bills for a customer, most recent first. Customers can only read their own bills.
// @Tags tagihan
// @Produce json
// @Param userId path int true "Customer user ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Tagihan} "Bills retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid user ID"
// @Failure 403 {object} utils.APIResponse "Not the owner of these bills"
// @Security BearerAuth
// @Router /tagihan/user/{userId} [get]
func (h *TagihanHandler) GetTagihanByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", err)
		return
	}

	// A customer token only grants access to its own bills
	if c.GetString(middleware.ContextRole) == models.RolePelanggan &&
		middleware.UserIDFromContext(c) != uint(userID) {
		utils.ForbiddenResponse(c, "Cannot read another customer's bills")
		return
	}

	tagihans, err := h.billingService.GetTagihanByUser(uint(userID))
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to get tagihan list")
		utils.InternalServerErrorResponse(c, "Failed to get tagihan list", err)
		return
	}

	utils.SuccessResponse(c, "Daftar tagihan ditemukan", tagihans)
}

// UploadBuktiBayar handles POST /tagihan/upload/:id
// @Summary Upload a payment proof image
// @Description Customer uploads a transfer proof; the bill moves to MENUNGGU_VERIFIKASI
// @Tags tagihan
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Tagihan ID"
// @Param image formData file true "Proof image"
// @Success 200 {object} utils.APIResponse{data=models.Tagihan} "Proof submitted"
// @Failure 400 {object} utils.APIResponse "Missing file or invalid ID"
// @Failure 403 {object} utils.APIResponse "Not the owner of this bill"
// @Failure 404 {object} utils.APIResponse "Tagihan not found"
// @Security BearerAuth
// @Router /tagihan/upload/{id} [post]
func (h *TagihanHandler) UploadBuktiBayar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tagihan ID", err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "File gambar wajib diisi", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read uploaded file", err)
		return
	}

	tagihan, err := h.billingService.SubmitBuktiBayar(uint(id), middleware.UserIDFromContext(c), fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Tagihan tidak ditemukan")
			return
		}
		if errors.Is(err, service.ErrMissingFile) {
			utils.BadRequestResponse(c, "File gambar wajib diisi", nil)
			return
		}
		if errors.Is(err, service.ErrNotOwner) {
			utils.ForbiddenResponse(c, "Cannot upload a proof for another customer's bill")
			return
		}
		if errors.Is(err, service.ErrInvalidVerifikasi) {
			utils.BadRequestResponse(c, "Tagihan sudah lunas", nil)
			return
		}
		h.logger.WithError(err).WithField("tagihan_id", id).Error("Failed to submit payment proof")
		utils.InternalServerErrorResponse(c, "Gagal upload", err)
		return
	}

	utils.SuccessResponse(c, "Bukti terkirim", tagihan)
}

// GetVerificationQueue handles GET /tagihan/verifikasi/list
// @Summary List bills awaiting verification
// @Description Get all bills in MENUNGGU_VERIFIKASI joined with customer names, for kasir review
// @Tags tagihan
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.VerifikasiListItem} "Queue retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /tagihan/verifikasi/list [get]
func (h *TagihanHandler) GetVerificationQueue(c *gin.Context) {
	items, err := h.billingService.GetVerificationQueue()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get verification queue")
		utils.InternalServerErrorResponse(c, "Failed to get verification queue", err)
		return
	}

	utils.SuccessResponse(c, "Daftar verifikasi ditemukan", items)
}

// DecideVerification handles PUT /tagihan/verifikasi/:id
// @Summary Accept or reject a payment proof
// @Description TERIMA marks the bill LUNAS; TOLAK returns it to BELUM_BAYAR and clears the proof
// @Tags tagihan
// @Accept json
// @Produce json
// @Param id path int true "Tagihan ID"
// @Param request body VerifikasiRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=models.Tagihan} "Decision applied"
// @Failure 400 {object} utils.APIResponse "Invalid decision or bill not awaiting verification"
// @Failure 404 {object} utils.APIResponse "Tagihan not found"
// @Security BearerAuth
// @Router /tagihan/verifikasi/{id} [put]
func (h *TagihanHandler) DecideVerification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tagihan ID", err)
		return
	}

	var req VerifikasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	tagihan, err := h.billingService.DecideVerification(uint(id), req.Aksi)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Tagihan tidak ditemukan")
			return
		}
		if errors.Is(err, service.ErrInvalidVerifikasi) {
			utils.BadRequestResponse(c, "Tagihan tidak sedang menunggu verifikasi", nil)
			return
		}
		h.logger.WithError(err).WithField("tagihan_id", id).Error("Failed to decide verification")
		utils.InternalServerErrorResponse(c, "Failed to decide verification", err)
		return
	}

	message := "Ditolak"
	if req.Aksi == service.AksiTerima {
		message = "Lunas"
	}

	utils.SuccessResponse(c, message, tagihan)
}
