package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/models"
)

func orderSubmission(contact string, subtotal float64) map[string]any {
	return map[string]any{
		"order": map[string]any{
			"productSku":    "TEE-1",
			"productTitle":  "Classic Tee",
			"totalQuantity": 3,
			"subtotal":      subtotal,
			"unitPrice":     12.5,
			"cart": []map[string]any{
				{"colorId": "c1", "size": "M", "quantity": 2},
				{"colorId": "c9", "size": "L", "quantity": 1},
			},
		},
		"colorNames": map[string]string{"c1": "Crimson"},
		"customer": map[string]any{
			"emailOrPhone":   contact,
			"name":           "Jane Doe",
			"address":        "1 Main St",
			"city":           "Lisbon",
			"country":        "PT",
			"postalCode":     "1000-001",
			"shippingMethod": "standard",
		},
	}
}

func (ts *testServer) submitOrder(t *testing.T, contact string, subtotal float64) models.OrderResponse {
	t.Helper()
	w := ts.sendJSON(t, http.MethodPost, "/orders/submit/", orderSubmission(contact, subtotal))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.OrderResponse](t, w)
}

func TestSubmitOrder(t *testing.T) {
	ts := newTestServer(t)

	order := ts.submitOrder(t, "jane@example.com", 37.5)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusConfirmed, order.Status)
	assert.Equal(t, 37.5, order.GrandTotal)
	assert.Equal(t, 12.5, order.UnitPriceTier)
	assert.Equal(t, "INV-000001", order.Invoice)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Crimson", order.Items[0].ColorName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "c9", order.Items[1].ColorName)
	assert.Equal(t, int64(2), count(t, ts.db, &models.OrderItem{}))

	events := ts.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventOrderCreated, events[0].Type)
	assert.Equal(t, order.ID, events[0].OrderID)
	assert.Equal(t, "jane@example.com", events[0].EmailOrPhone)
}

func TestSubmitOrder_Invalid(t *testing.T) {
	ts := newTestServer(t)

	emptyCart := orderSubmission("jane@example.com", 10)
	emptyCart["order"].(map[string]any)["cart"] = []map[string]any{}

	noContact := orderSubmission("", 10)

	for name, body := range map[string]any{"empty cart": emptyCart, "missing contact": noContact} {
		t.Run(name, func(t *testing.T) {
			w := ts.sendJSON(t, http.MethodPost, "/orders/submit/", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Zero(t, count(t, ts.db, &models.Order{}))
	assert.Empty(t, ts.events.Events())
}

func TestSubmitOrder_ItemFailureRollsBack(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.db.Migrator().DropTable(&models.OrderItem{}))

	w := ts.sendJSON(t, http.MethodPost, "/orders/submit/", orderSubmission("jane@example.com", 10))

	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.Zero(t, count(t, ts.db, &models.Order{}))
	assert.Empty(t, ts.events.Events())
}

func TestGetOrders_NewestFirst(t *testing.T) {
	ts := newTestServer(t)

	first := ts.submitOrder(t, "a@example.com", 10)
	second := ts.submitOrder(t, "b@example.com", 20)

	w := ts.get("/orders/")
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]models.OrderResponse](t, w)

	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, "INV-000002", orders[0].Invoice)
	assert.Len(t, orders[1].Items, 2)
}

func TestGetOrderDetails(t *testing.T) {
	ts := newTestServer(t)
	order := ts.submitOrder(t, "jane@example.com", 10)

	w := ts.get("/orders/" + itoa(order.ID))
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.OrderResponse](t, w)
	assert.Equal(t, order.Invoice, got.Invoice)
	assert.Len(t, got.Items, 2)

	assert.Equal(t, http.StatusNotFound, ts.get("/orders/42").Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	order := ts.submitOrder(t, "jane@example.com", 10)

	w := ts.sendJSON(t, http.MethodPut, "/orders/"+itoa(order.ID)+"/status", map[string]string{"status": models.StatusShipped})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Equal(t, models.StatusShipped, body["status"])
	assert.EqualValues(t, order.ID, body["id"])

	got := decode[models.OrderResponse](t, ts.get("/orders/"+itoa(order.ID)))
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.True(t, got.CreatedAt.Equal(order.CreatedAt), "created at must not change")

	// Setting the same status again still succeeds.
	w = ts.sendJSON(t, http.MethodPut, "/orders/"+itoa(order.ID)+"/status", map[string]string{"status": models.StatusShipped})
	assert.Equal(t, http.StatusOK, w.Code)

	events := ts.events.Events()
	require.Len(t, events, 3)
	assert.Equal(t, models.EventOrderStatusUpdated, events[1].Type)
	assert.Equal(t, models.StatusShipped, events[1].Status)
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	ts := newTestServer(t)
	order := ts.submitOrder(t, "jane@example.com", 10)

	w := ts.sendJSON(t, http.MethodPut, "/orders/"+itoa(order.ID)+"/status", map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.sendJSON(t, http.MethodPut, "/orders/999/status", map[string]string{"status": models.StatusCancelled})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.sendJSON(t, http.MethodPut, "/orders/abc/status", map[string]string{"status": models.StatusCancelled})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[models.OrderResponse](t, ts.get("/orders/"+itoa(order.ID)))
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Len(t, ts.events.Events(), 1)
}
