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

// PengaduanHandler handles complaint HTTP requests
type PengaduanHandler struct {
	complaintService service.ComplaintService
	logger           *logger.Logger
}

// NewPengaduanHandler creates a new pengaduan handler
func NewPengaduanHandler(complaintService service.ComplaintService, logger *logger.Logger) *PengaduanHandler {
	return &PengaduanHandler{
		complaintService: complaintService,
		logger:           logger,
	}
}

// ContactRequest represents the guest contact-form request body
type ContactRequest struct {
	Nama  string `json:"nama" example:"Tamu"`
	Email string `json:"email" example:"tamu@mail.com"`
	Pesan string `json:"pesan" example:"Air di rumah saya mati sejak kemarin"`
}

// ReplyRequest represents the manager reply request body
type ReplyRequest struct {
	Status    string `json:"status" binding:"required,oneof=PENDING DIPROSES SELESAI" example:"SELESAI"`
	Tanggapan string `json:"tanggapan" binding:"required" example:"Petugas sudah dikirim ke lokasi"`
}

// SubmitContact handles POST /contact
// @Summary Submit a guest contact message
// @Description Record a message from a guest; all fields are required
// @Tags pengaduan
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact payload"
// @Success 200 {object} utils.APIResponse{data=models.Pengaduan} "Message recorded"
// @Failure 400 {object} utils.APIResponse "Missing fields"
// @Router /contact [post]
func (h *PengaduanHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	pengaduan, err := h.complaintService.SubmitGuestMessage(req.Nama, req.Email, req.Pesan)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			utils.BadRequestResponse(c, "Data tidak lengkap", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to record guest message")
		utils.InternalServerErrorResponse(c, "Internal server error", err)
		return
	}

	utils.SuccessResponse(c, "Pesan tamu berhasil disimpan", pengaduan)
}

// SubmitPengaduan handles POST /pengaduan
// @Summary Submit a complaint
// @Description Multipart complaint submission with an optional image. Owned by the logged-in customer when a valid token is present, otherwise treated as a guest submission.
// @Tags pengaduan
// @Accept multipart/form-data
// @Produce json
// @Param judul formData string true "Complaint title"
// @Param deskripsi formData string true "Complaint description"
// @Param nama formData string false "Guest name (guests only)"
// @Param email formData string false "Guest email (guests only)"
// @Param image formData file false "Complaint photo"
// @Success 200 {object} utils.APIResponse{data=models.Pengaduan} "Complaint recorded"
// @Failure 400 {object} utils.APIResponse "Missing fields"
// @Router /pengaduan [post]
func (h *PengaduanHandler) SubmitPengaduan(c *gin.Context) {
	input := service.SubmitPengaduanInput{
		Nama:      c.PostForm("nama"),
		Email:     c.PostForm("email"),
		Judul:     c.PostForm("judul"),
		Deskripsi: c.PostForm("deskripsi"),
	}

	// The owner comes from the verified token, not from a form field
	if userID := middleware.UserIDFromContext(c); userID != 0 {
		input.UserID = &userID
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
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

		input.FotoFilename = fileHeader.Filename
		input.FotoContent = content
	}

	pengaduan, err := h.complaintService.SubmitPengaduan(input)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			utils.BadRequestResponse(c, "Data tidak lengkap", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to submit pengaduan")
		utils.InternalServerErrorResponse(c, "Gagal kirim pengaduan", err)
		return
	}

	utils.SuccessResponse(c, "Pengaduan terkirim", pengaduan)
}

// GetPengaduanByUser handles GET /pengaduan/user/:id
// @Summary Get a customer's complaint history
// @Description List the customer's complaints, newest first, excluding ones they removed
// @Tags pengaduan
// @Produce json
// @Param id path int true "Customer user ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Pengaduan} "History retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid user ID"
// @Failure 403 {object} utils.APIResponse "Not the owner of this history"
// @Security BearerAuth
// @Router /pengaduan/user/{id} [get]
func (h *PengaduanHandler) GetPengaduanByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", err)
		return
	}

	if c.GetString(middleware.ContextRole) == models.RolePelanggan &&
		middleware.UserIDFromContext(c) != uint(userID) {
		utils.ForbiddenResponse(c, "Cannot read another customer's complaints")
		return
	}

	pengaduans, err := h.complaintService.GetPengaduanByUser(uint(userID))
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to get pengaduan history")
		utils.InternalServerErrorResponse(c, "Gagal ambil data", err)
		return
	}

	utils.SuccessResponse(c, "Riwayat pengaduan ditemukan", pengaduans)
}

// SoftDelete handles DELETE /pengaduan/:id
// @Summary Remove a complaint from the customer's history
// @Description Soft delete by the owning customer; the complaint stays visible to managers
// @Tags pengaduan
// @Produce json
// @Param id path int true "Pengaduan ID"
// @Success 200 {object} utils.APIResponse "Complaint removed from history"
// @Failure 403 {object} utils.APIResponse "Not the owner of this complaint"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Security BearerAuth
// @Router /pengaduan/{id} [delete]
func (h *PengaduanHandler) SoftDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pengaduan ID", err)
		return
	}

	if err := h.complaintService.SoftDelete(uint(id), middleware.UserIDFromContext(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Pengaduan tidak ditemukan")
			return
		}
		if errors.Is(err, service.ErrNotOwner) {
			utils.ForbiddenResponse(c, "Cannot remove another customer's complaint")
			return
		}
		h.logger.WithError(err).WithField("pengaduan_id", id).Error("Failed to soft delete pengaduan")
		utils.InternalServerErrorResponse(c, "Gagal menghapus laporan", err)
		return
	}

	utils.SuccessResponse(c, "Laporan berhasil dihapus dari riwayat", nil)
}

// GetInbox handles GET /manager/pengaduan
// @Summary Manager complaint inbox
// @Description List every complaint including guest messages, newest first. Listing has no side effects; use the mark-read endpoint to flip unread flags.
// @Tags pengaduan
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Pengaduan} "Inbox retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /manager/pengaduan [get]
func (h *PengaduanHandler) GetInbox(c *gin.Context) {
	pengaduans, err := h.complaintService.GetInbox()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get inbox")
		utils.InternalServerErrorResponse(c, "Gagal ambil data", err)
		return
	}

	utils.SuccessResponse(c, "Daftar pengaduan ditemukan", pengaduans)
}

// MarkInboxRead handles POST /manager/pengaduan/read
// @Summary Mark all complaints as read
// @Description Flip every unread complaint to read; invoked explicitly when the manager opens the inbox
// @Tags pengaduan
// @Produce json
// @Success 200 {object} utils.APIResponse "Unread complaints marked as read"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /manager/pengaduan/read [post]
func (h *PengaduanHandler) MarkInboxRead(c *gin.Context) {
	marked, err := h.complaintService.MarkInboxRead()
	if err != nil {
		h.logger.WithError(err).Error("Failed to mark inbox read")
		utils.InternalServerErrorResponse(c, "Gagal menandai pengaduan", err)
		return
	}

	utils.SuccessResponse(c, "Pengaduan ditandai sudah dibaca", gin.H{"marked": marked})
}

// Reply handles PUT /manager/pengaduan/:id
// @Summary Reply to a complaint
// @Description Set the manager's response text and the complaint status
// @Tags pengaduan
// @Accept json
// @Produce json
// @Param id path int true "Pengaduan ID"
// @Param request body ReplyRequest true "Reply payload"
// @Success 200 {object} utils.APIResponse{data=models.Pengaduan} "Reply recorded"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Security BearerAuth
// @Router /manager/pengaduan/{id} [put]
func (h *PengaduanHandler) Reply(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pengaduan ID", err)
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	pengaduan, err := h.complaintService.Reply(uint(id), req.Status, req.Tanggapan)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Pengaduan tidak ditemukan")
			return
		}
		h.logger.WithError(err).WithField("pengaduan_id", id).Error("Failed to reply to pengaduan")
		utils.InternalServerErrorResponse(c, "Gagal update", err)
		return
	}

	utils.SuccessResponse(c, "Status dan tanggapan diperbarui", pengaduan)
}

// HardDelete handles DELETE /manager/pengaduan/:id
// @Summary Permanently delete a complaint
// @Description Manager-only irreversible row removal
// @Tags pengaduan
// @Produce json
// @Param id path int true "Pengaduan ID"
// @Success 200 {object} utils.APIResponse "Complaint deleted"
// @Failure 404 {object} utils.APIResponse "Complaint not found"
// @Security BearerAuth
// @Router /manager/pengaduan/{id} [delete]
func (h *PengaduanHandler) HardDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pengaduan ID", err)
		return
	}

	if err := h.complaintService.HardDelete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Pengaduan tidak ditemukan")
			return
		}
		h.logger.WithError(err).WithField("pengaduan_id", id).Error("Failed to hard delete pengaduan")
		utils.InternalServerErrorResponse(c, "Gagal menghapus pesan", err)
		return
	}

	utils.SuccessResponse(c, "Pesan berhasil dihapus permanen", nil)
}
