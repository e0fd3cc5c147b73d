package httpserver

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mcastellanos/tienda/internal/events"
	"github.com/mcastellanos/tienda/internal/logging"
)

func publish(c echo.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event_publish_error", "topic", topic, "error", err)
	}
}
