package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/urmedia/masala-api/internal/models"
	"github.com/urmedia/masala-api/internal/services"
	"github.com/urmedia/masala-api/internal/sse"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRoleService mocks the RoleService
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) GetUserRole(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRoleService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleService) OwnerExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockProvisionService mocks the ProvisionService
type MockProvisionService struct {
	mock.Mock
}

func (m *MockProvisionService) SetupOwner(ctx context.Context, email, password, name string) (*models.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProvisionService) CreateAdmin(ctx context.Context, email, password, name, role string) (*models.User, error) {
	args := m.Called(ctx, email, password, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductService mocks the ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, params services.ProductParams) (*models.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, params services.ProductParams) (*models.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Product, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderService mocks the OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, params services.CreateOrderParams) (*models.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter services.OrderFilter) ([]models.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) SetTracking(ctx context.Context, id uuid.UUID, trackingID, courierName string) (*models.Order, error) {
	args := m.Called(ctx, id, trackingID, courierName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCustomerService mocks the CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// MockTrackingService mocks the TrackingService
type MockTrackingService struct {
	mock.Mock
}

func (m *MockTrackingService) AddEvent(ctx context.Context, orderID uuid.UUID, status string, message *string) (*models.TrackingEvent, error) {
	args := m.Called(ctx, orderID, status, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackingEvent), args.Error(1)
}

func (m *MockTrackingService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.TrackingEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrackingEvent), args.Error(1)
}

// MockSettingsService mocks the SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) DeliveryCharges(ctx context.Context) (models.DeliveryCharges, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DeliveryCharges), args.Error(1)
}

func (m *MockSettingsService) UpdateDeliveryCharges(ctx context.Context, charges models.DeliveryCharges) error {
	args := m.Called(ctx, charges)
	return args.Error(0)
}

func (m *MockSettingsService) StoreInfo(ctx context.Context) (models.StoreInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StoreInfo), args.Error(1)
}

func (m *MockSettingsService) UpdateStoreInfo(ctx context.Context, info models.StoreInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

// MockReportService mocks the ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Dashboard(ctx context.Context) (*services.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DashboardStats), args.Error(1)
}

func (m *MockReportService) Summary(ctx context.Context, since time.Time) (*services.ReportSummary, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReportSummary), args.Error(1)
}

func (m *MockReportService) SalesSeries(ctx context.Context, since time.Time, days int) ([]services.SalesPoint, error) {
	args := m.Called(ctx, since, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.SalesPoint), args.Error(1)
}

func (m *MockReportService) TopProducts(ctx context.Context, since time.Time, limit int) ([]services.TopProduct, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.TopProduct), args.Error(1)
}

func (m *MockReportService) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockAdminUserService mocks the AdminUserService
type MockAdminUserService struct {
	mock.Mock
}

func (m *MockAdminUserService) List(ctx context.Context) ([]models.AdminUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminUser), args.Error(1)
}

func (m *MockAdminUserService) Update(ctx context.Context, id uuid.UUID, name, role string) (*models.AdminUser, error) {
	args := m.Called(ctx, id, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHub mocks the SSE hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) BroadcastOrderCreated(orderID uuid.UUID, orderRef string, pendingCount int) {
	m.Called(orderID, orderRef, pendingCount)
}

func (m *MockHub) BroadcastOrderUpdated(orderID uuid.UUID, orderRef, status string, pendingCount int) {
	m.Called(orderID, orderRef, status, pendingCount)
}
