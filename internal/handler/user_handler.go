package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pdam-be-svc/internal/service"
	"pdam-be-svc/pkg/logger"
	"pdam-be-svc/pkg/utils"
)

// UserHandler handles user and authentication HTTP requests
type UserHandler struct {
	authService    service.AuthService
	billingService service.BillingService
	logger         *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService service.AuthService, billingService service.BillingService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		authService:    authService,
		billingService: billingService,
		logger:         logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Budi Santoso"`
	Email    string `json:"email" binding:"required,email" example:"budi@test.com"`
	Password string `json:"password" binding:"required,min=6" example:"rahasia123"`
	Address  string `json:"address" example:"Jl. Melati No. 3"`
	Role     string `json:"role" binding:"omitempty,oneof=PELANGGAN KASIR MANAGER" example:"PELANGGAN"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"budi@test.com"`
	Password string `json:"password" binding:"required" example:"rahasia123"`
}

// Register handles POST /user
// @Summary Register a new user
// @Description Create a customer or staff account with a hashed password
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} utils.APIResponse "User created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 409 {object} utils.APIResponse "Email already in use"
// @Router /user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	profile, err := h.authService.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			utils.ConflictResponse(c, "Email sudah dipakai")
			return
		}
		h.logger.WithError(err).Error("Failed to register user")
		utils.InternalServerErrorResponse(c, "Failed to register user", err)
		return
	}

	utils.CreatedResponse(c, "User berhasil dibuat", profile)
}

// Login handles POST /user/login
// @Summary Authenticate a user
// @Description Verify credentials and issue a signed token carrying user id and role
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse{data=response.LoginResponse} "Login successful"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 401 {object} utils.APIResponse "Wrong password"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "User tidak ditemukan")
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Password salah")
			return
		}
		h.logger.WithError(err).Error("Failed to log user in")
		utils.InternalServerErrorResponse(c, "Failed to log in", err)
		return
	}

	utils.SuccessResponse(c, "Login berhasil", result)
}

// GetProfile handles GET /user/:id
// @Summary Get a user's public profile
// @Description Fetch public profile fields, password excluded
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=response.UserProfileResponse} "Profile retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid user ID"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Security BearerAuth
// @Router /user/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", err)
		return
	}

	profile, err := h.authService.GetProfile(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "User tidak ditemukan")
			return
		}
		h.logger.WithError(err).WithField("user_id", id).Error("Failed to get profile")
		utils.InternalServerErrorResponse(c, "Failed to get profile", err)
		return
	}

	utils.SuccessResponse(c, "Profil ditemukan", profile)
}

// GetPelangganUsers handles GET /users/pelanggan
// @Summary List customers
// @Description Get a page of users with role PELANGGAN, for the kasir bill-entry screen
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.PaginatedResponse "Customers retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /users/pelanggan [get]
func (h *UserHandler) GetPelangganUsers(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	users, total, err := h.billingService.GetPelangganUsers(page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get pelanggan users")
		utils.InternalServerErrorResponse(c, "Failed to get pelanggan users", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Daftar pelanggan ditemukan", users, page, limit, total)
}
