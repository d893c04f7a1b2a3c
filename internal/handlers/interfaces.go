package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/internal/sse"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateAccessToken(token string) (*services.Claims, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// RoleServiceInterface defines the methods used by handlers from RoleService
type RoleServiceInterface interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) (string, error)
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	OwnerExists(ctx context.Context) (bool, error)
}

// ProvisionServiceInterface defines the methods used by handlers from ProvisionService
type ProvisionServiceInterface interface {
	SetupOwner(ctx context.Context, email, password, name string) (*models.User, error)
	CreateAdmin(ctx context.Context, email, password, name, role string) (*models.User, error)
}

// AdminUserServiceInterface defines the methods used by handlers from AdminUserService
type AdminUserServiceInterface interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	Update(ctx context.Context, id uuid.UUID, name, role string) (*models.AdminUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductServiceInterface defines the methods used by handlers from ProductService
type ProductServiceInterface interface {
	Create(ctx context.Context, params services.ProductParams) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Update(ctx context.Context, id uuid.UUID, params services.ProductParams) (*models.Product, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderServiceInterface defines the methods used by handlers from OrderService
type OrderServiceInterface interface {
	Create(ctx context.Context, params services.CreateOrderParams) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter services.OrderFilter) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	SetTracking(ctx context.Context, id uuid.UUID, trackingID, courierName string) (*models.Order, error)
	CountPending(ctx context.Context) (int, error)
}

// CustomerServiceInterface defines the methods used by handlers from CustomerService
type CustomerServiceInterface interface {
	List(ctx context.Context, search string) ([]models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// TrackingServiceInterface defines the methods used by handlers from TrackingService
type TrackingServiceInterface interface {
	AddEvent(ctx context.Context, orderID uuid.UUID, status string, message *string) (*models.TrackingEvent, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.TrackingEvent, error)
}

// SettingsServiceInterface defines the methods used by handlers from SettingsService
type SettingsServiceInterface interface {
	DeliveryCharges(ctx context.Context) (models.DeliveryCharges, error)
	UpdateDeliveryCharges(ctx context.Context, charges models.DeliveryCharges) error
	StoreInfo(ctx context.Context) (models.StoreInfo, error)
	UpdateStoreInfo(ctx context.Context, info models.StoreInfo) error
}

// ReportServiceInterface defines the methods used by handlers from ReportService
type ReportServiceInterface interface {
	Dashboard(ctx context.Context) (*services.DashboardStats, error)
	Summary(ctx context.Context, since time.Time) (*services.ReportSummary, error)
	SalesSeries(ctx context.Context, since time.Time, days int) ([]services.SalesPoint, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]services.TopProduct, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
}

// HubInterface defines the methods used by handlers from the Hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	BroadcastOrderCreated(orderID uuid.UUID, orderRef string, pendingCount int)
	BroadcastOrderUpdated(orderID uuid.UUID, orderRef, status string, pendingCount int)
}
