package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastellanos/tienda/internal/models"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("a@x.com", "password")
	accessToken := env.login("a@x.com", "password")

	rec := env.do(http.MethodPost, "/orders", []map[string]any{
		{"product_id": 1, "quantity": 2, "price": 10.0},
		{"product_id": 2, "quantity": 1, "price": 5.5},
	}, accessToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 25.5, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("a@x.com", "password")
	accessToken := env.login("a@x.com", "password")

	rec := env.do(http.MethodPost, "/orders", []map[string]any{}, accessToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice@x.com", "password")
	env.createUser("bob@x.com", "password")

	aliceToken := env.login("alice@x.com", "password")
	bobToken := env.login("bob@x.com", "password")

	rec := env.do(http.MethodPost, "/orders", []map[string]any{
		{"product_id": 1, "quantity": 1, "price": 10.0},
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodGet, "/orders", nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var bobOrders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bobOrders))
	assert.Empty(t, bobOrders)

	rec = env.do(http.MethodGet, "/orders", nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var aliceOrders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliceOrders))
	require.Len(t, aliceOrders, 1)
}

func TestGetOrderNotFoundForForeignOrder(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice@x.com", "password")
	env.createUser("bob@x.com", "password")

	aliceToken := env.login("alice@x.com", "password")
	bobToken := env.login("bob@x.com", "password")

	rec := env.do(http.MethodPost, "/orders", []map[string]any{
		{"product_id": 1, "quantity": 1, "price": 10.0},
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = env.do(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil, bobToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
}
