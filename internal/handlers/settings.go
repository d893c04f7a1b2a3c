package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/pkg/dto"
)

type SettingsHandler struct {
	settingsService  SettingsServiceInterface
	adminUserService AdminUserServiceInterface
}

func NewSettingsHandler(settingsService SettingsServiceInterface, adminUserService AdminUserServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService:  settingsService,
		adminUserService: adminUserService,
	}
}

func (h *SettingsHandler) GetDeliveryCharges(c *drift.Context) {
	charges, err := h.settingsService.DeliveryCharges(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to load delivery charges")
		return
	}
	_ = c.JSON(200, charges)
}

func (h *SettingsHandler) UpdateDeliveryCharges(c *drift.Context) {
	var req dto.DeliveryChargesRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Dhaka < 0 || req.OutsideDhaka < 0 {
		c.BadRequest("charges cannot be negative")
		return
	}

	charges := models.DeliveryCharges{Dhaka: req.Dhaka, OutsideDhaka: req.OutsideDhaka}
	if err := h.settingsService.UpdateDeliveryCharges(c.Request.Context(), charges); err != nil {
		c.InternalServerError("failed to update delivery charges")
		return
	}

	_ = c.JSON(200, charges)
}

// GetStoreInfo is also mounted publicly for the storefront footer.
func (h *SettingsHandler) GetStoreInfo(c *drift.Context) {
	info, err := h.settingsService.StoreInfo(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to load store info")
		return
	}
	_ = c.JSON(200, info)
}

func (h *SettingsHandler) UpdateStoreInfo(c *drift.Context) {
	var req dto.StoreInfoRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	info := models.StoreInfo{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.settingsService.UpdateStoreInfo(c.Request.Context(), info); err != nil {
		c.InternalServerError("failed to update store info")
		return
	}

	_ = c.JSON(200, info)
}

func (h *SettingsHandler) ListAdminUsers(c *drift.Context) {
	admins, err := h.adminUserService.List(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to list admin users")
		return
	}
	_ = c.JSON(200, admins)
}

func (h *SettingsHandler) UpdateAdminUser(c *drift.Context) {
	id, err := uuid.Parse(c.Param("adminId"))
	if err != nil {
		c.BadRequest("invalid admin id")
		return
	}

	var req dto.UpdateAdminUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if !models.ValidRole(req.Role) {
		c.BadRequest("invalid role")
		return
	}

	admin, err := h.adminUserService.Update(c.Request.Context(), id, req.Name, req.Role)
	if err != nil {
		c.NotFound("admin user not found")
		return
	}

	_ = c.JSON(200, admin)
}

func (h *SettingsHandler) DeleteAdminUser(c *drift.Context) {
	id, err := uuid.Parse(c.Param("adminId"))
	if err != nil {
		c.BadRequest("invalid admin id")
		return
	}

	if err := h.adminUserService.Delete(c.Request.Context(), id); err != nil {
		c.InternalServerError("failed to delete admin user")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "admin user removed"})
}
