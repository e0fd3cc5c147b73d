package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mcastellanos/tienda/internal/logging"
	authmw "github.com/mcastellanos/tienda/internal/middleware/auth"
	"github.com/mcastellanos/tienda/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	var items []service.OrderItemInput
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, items)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(ctx, userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		logging.FromContext(ctx).Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, order)
}
