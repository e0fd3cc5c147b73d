package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mcastellanos/tienda/internal/events"
	"github.com/mcastellanos/tienda/internal/logging"
	authmw "github.com/mcastellanos/tienda/internal/middleware/auth"
	"github.com/mcastellanos/tienda/internal/service"
)

type CartHTTP struct {
	Svc    *service.CartService
	Events events.Publisher
}

type cartItemResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid product id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	item, err := h.Svc.AddToCart(ctx, userID, uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_error", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "product added to cart"})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_get")

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, cartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_clear")

	userID, err := authmw.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Events, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return c.NoContent(http.StatusNoContent)
}
