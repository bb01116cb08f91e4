package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/models"
	"github.com/Kagaba/farmlink-api/routes"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStore backs the lifecycle engine for handler tests without a database.
type memStore struct {
	orders   map[uint]models.Order
	users    map[uint]models.User
	earnings map[uint]decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[uint]models.Order),
		users:    make(map[uint]models.User),
		earnings: make(map[uint]decimal.Decimal),
	}
}

func (s *memStore) Order(_ context.Context, orderID uint) (models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, lifecycle.ErrOrderNotFound
	}
	return order, nil
}

func (s *memStore) User(_ context.Context, userID uint) (models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, lifecycle.ErrUserNotFound
	}
	return user, nil
}

func (s *memStore) Transition(_ context.Context, orderID uint, decide lifecycle.DecideFunc) (lifecycle.Result, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return lifecycle.Result{}, lifecycle.ErrOrderNotFound
	}

	mutation, err := decide(order)
	if err != nil {
		return lifecycle.Result{}, err
	}

	order.Status = mutation.Status
	if mutation.DeliverymanID != nil {
		order.DeliverymanID = mutation.DeliverymanID
	}

	res := lifecycle.Result{Order: order}
	if mutation.CreditFee {
		id := *order.DeliverymanID
		s.earnings[id] = s.earnings[id].Add(lifecycle.DeliveryFee)
		res.Credited = true
		res.Earnings = s.earnings[id]
	}

	s.orders[orderID] = order
	return res, nil
}

func (s *memStore) Stats(_ context.Context, deliverymanID uint) (lifecycle.Stats, error) {
	return lifecycle.Stats{Earnings: s.earnings[deliverymanID]}, nil
}

func newTestServer(store lifecycle.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	api := controllers.NewAPI(nil, lifecycle.NewEngine(store), "./uploads")
	server := gin.New()
	routes.OrderRoutes(server, api)
	routes.DeliveryRoutes(server, api)
	return server
}

func doJSON(t *testing.T, server *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	store := newMemStore()
	store.users[42] = models.User{Model: gorm.Model{ID: 42}, Role: models.RoleDeliveryMan, Status: models.StatusActive}
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderPending}
	server := newTestServer(store)

	rec, payload := doJSON(t, server, http.MethodPut, "/update-order-status/1",
		`{"status":"Approved","deliverymanId":42}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Approved", payload["status"])
	require.Equal(t, false, payload["earningsCredited"])

	order := store.orders[1]
	require.NotNil(t, order.DeliverymanID)
	require.Equal(t, uint(42), *order.DeliverymanID)
}

func TestUpdateOrderStatusEndpointRejectsUnknownStatus(t *testing.T) {
	store := newMemStore()
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderPending}
	server := newTestServer(store)

	rec, _ := doJSON(t, server, http.MethodPut, "/update-order-status/1",
		`{"status":"Shipped"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, models.OrderPending, store.orders[1].Status)
}

func TestUpdateOrderStatusEndpointUnknownOrder(t *testing.T) {
	server := newTestServer(newMemStore())

	rec, _ := doJSON(t, server, http.MethodPut, "/update-order-status/99",
		`{"status":"Cancelled"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusEndpointCreditsOnDelivery(t *testing.T) {
	store := newMemStore()
	dmID := uint(42)
	store.users[42] = models.User{Model: gorm.Model{ID: 42}, Role: models.RoleDeliveryMan, Status: models.StatusActive}
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderApproved, DeliverymanID: &dmID}
	server := newTestServer(store)

	rec, payload := doJSON(t, server, http.MethodPut, "/update-order-status/1",
		`{"status":"Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, payload["earningsCredited"])
	require.Equal(t, "50", payload["earnings"])

	// A second delivery confirmation succeeds but credits nothing more.
	rec, payload = doJSON(t, server, http.MethodPut, "/update-order-status/1",
		`{"status":"Delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, payload["earningsCredited"])
	require.True(t, store.earnings[42].Equal(decimal.NewFromInt(50)))
}

func TestDeliverymanUpdateOrderEndpoint(t *testing.T) {
	store := newMemStore()
	dmID := uint(42)
	store.users[42] = models.User{Model: gorm.Model{ID: 42}, Role: models.RoleDeliveryMan, Status: models.StatusActive}
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderApproved, DeliverymanID: &dmID}
	server := newTestServer(store)

	rec, payload := doJSON(t, server, http.MethodPut, "/deliveryman/update-order/1",
		`{"status":"Delivered","deliverymanId":42}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Delivered", payload["status"])
	require.Equal(t, true, payload["earningsCredited"])
}

func TestDeliverymanUpdateOrderEndpointWrongCaller(t *testing.T) {
	store := newMemStore()
	dmID := uint(42)
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderApproved, DeliverymanID: &dmID}
	server := newTestServer(store)

	rec, _ := doJSON(t, server, http.MethodPut, "/deliveryman/update-order/1",
		`{"status":"Delivered","deliverymanId":99}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, models.OrderApproved, store.orders[1].Status)
}

func TestDeliverymanUpdateOrderEndpointRequiresDeliverymanID(t *testing.T) {
	store := newMemStore()
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderApproved}
	server := newTestServer(store)

	rec, _ := doJSON(t, server, http.MethodPut, "/deliveryman/update-order/1",
		`{"status":"Delivered"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeliverymanUpdateOrderEndpointRejectsOtherStatuses(t *testing.T) {
	store := newMemStore()
	dmID := uint(42)
	store.orders[1] = models.Order{Model: gorm.Model{ID: 1}, Status: models.OrderApproved, DeliverymanID: &dmID}
	server := newTestServer(store)

	rec, _ := doJSON(t, server, http.MethodPut, "/deliveryman/update-order/1",
		`{"status":"Cancelled","deliverymanId":42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, models.OrderApproved, store.orders[1].Status)
}
