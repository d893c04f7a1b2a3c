package handlers

import (
	"errors"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/pkg/dto"
)

// AdminHandler covers the admin-shell bootstrap surface: verifying a
// caller's admin standing and provisioning owner/admin accounts. These
// endpoints authenticate inline rather than through the Auth middleware
// so every failure mode maps to the documented response bodies.
type AdminHandler struct {
	userService      UserServiceInterface
	roleService      RoleServiceInterface
	provisionService ProvisionServiceInterface
	jwtService       JWTServiceInterface
}

func NewAdminHandler(
	userService UserServiceInterface,
	roleService RoleServiceInterface,
	provisionService ProvisionServiceInterface,
	jwtService JWTServiceInterface,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		roleService:      roleService,
		provisionService: provisionService,
		jwtService:       jwtService,
	}
}

// MethodNotAllowed backs the non-POST registrations of the admin routes.
func MethodNotAllowed(c *drift.Context) {
	_ = c.JSON(405, map[string]string{"error": "Method not allowed"})
}

func (h *AdminHandler) bearerClaims(c *drift.Context) (*services.Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "No authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, "Invalid authorization header"
	}

	claims, err := h.jwtService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, "Invalid token"
	}

	return claims, ""
}

// VerifyAdmin reports whether the bearer token belongs to an admin-panel
// user. Missing or bad credentials are 401, lookup failures are 500, and
// both carry isAdmin=false so the caller always fails closed.
func (h *AdminHandler) VerifyAdmin(c *drift.Context) {
	claims, authErr := h.bearerClaims(c)
	if claims == nil {
		_ = c.JSON(401, map[string]any{"error": authErr, "isAdmin": false})
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.GetByID(ctx, claims.UserID)
	if err != nil {
		_ = c.JSON(401, map[string]any{"error": "Invalid token", "isAdmin": false})
		return
	}

	role, err := h.roleService.GetUserRole(ctx, user.ID)
	if err != nil {
		_ = c.JSON(500, map[string]any{"error": "Internal server error", "isAdmin": false})
		return
	}

	resp := dto.VerifyAdminResponse{
		IsAdmin: role != "",
		UserID:  user.ID,
		Email:   user.Email,
	}
	if role != "" {
		resp.Role = &role
	}

	_ = c.JSON(200, resp)
}

// SetupOwner bootstraps the first owner account. It is unauthenticated
// and permanently refuses once any owner exists.
func (h *AdminHandler) SetupOwner(c *drift.Context) {
	ctx := c.Request.Context()

	exists, err := h.roleService.OwnerExists(ctx)
	if err != nil {
		_ = c.JSON(500, map[string]string{"error": "Failed to check for existing owner"})
		return
	}
	if exists {
		_ = c.JSON(403, map[string]string{"error": "Owner already exists. Cannot create another owner through this endpoint."})
		return
	}

	var req dto.SetupOwnerRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		_ = c.JSON(400, map[string]string{"error": "Email, password, and name are required"})
		return
	}

	if len(req.Password) < 8 {
		_ = c.JSON(400, map[string]string{"error": "Password must be at least 8 characters"})
		return
	}

	user, err := h.provisionService.SetupOwner(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerExists):
			_ = c.JSON(403, map[string]string{"error": "Owner already exists. Cannot create another owner through this endpoint."})
		case errors.Is(err, services.ErrRoleAssignFailed):
			_ = c.JSON(500, map[string]string{"error": "Failed to assign owner role"})
		default:
			_ = c.JSON(400, map[string]string{"error": err.Error()})
		}
		return
	}

	_ = c.JSON(201, dto.ProvisionResponse{
		Success: true,
		Message: "Owner account created successfully",
		User: dto.CreatedUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  models.RoleOwner,
		},
	})
}

// CreateAdmin provisions admin-panel accounts. Only owners may call it.
func (h *AdminHandler) CreateAdmin(c *drift.Context) {
	claims, _ := h.bearerClaims(c)
	if claims == nil {
		_ = c.JSON(401, map[string]string{"error": "Invalid token"})
		return
	}

	ctx := c.Request.Context()

	isOwner, err := h.roleService.HasRole(ctx, claims.UserID, models.RoleOwner)
	if err != nil {
		_ = c.JSON(500, map[string]string{"error": "Failed to verify caller role"})
		return
	}
	if !isOwner {
		_ = c.JSON(403, map[string]string{"error": "Only owners can create admin users"})
		return
	}

	var req dto.CreateAdminRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Role == "" {
		_ = c.JSON(400, map[string]string{"error": "Email, password, name, and role are required"})
		return
	}

	if !models.ValidRole(req.Role) {
		_ = c.JSON(400, map[string]string{"error": "Invalid role. Must be owner, admin, or staff"})
		return
	}

	if len(req.Password) < 6 {
		_ = c.JSON(400, map[string]string{"error": "Password must be at least 6 characters"})
		return
	}

	user, err := h.provisionService.CreateAdmin(ctx, req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrRoleAssignFailed) {
			_ = c.JSON(500, map[string]string{"error": "Failed to assign role"})
			return
		}
		_ = c.JSON(400, map[string]string{"error": err.Error()})
		return
	}

	_ = c.JSON(201, dto.ProvisionResponse{
		Success: true,
		Message: "Admin user created successfully",
		User: dto.CreatedUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  req.Role,
		},
	})
}
