package http

import (
	"net/http"

	"crypto-pulse/internal/dto"
	"crypto-pulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"
)

func (h *HttpAPIHandler) SetupTelegram(base *echo.Group) {
	v1 := base.Group("/v1/telegram")
	{
		v1.POST("/webhook", h.TelegramWebhook)
	}
}

func (h *HttpAPIHandler) SetupHealth(base *echo.Group) {
	base.GET("/v1/health", h.Health)
}

func (h *HttpAPIHandler) TelegramWebhook(c echo.Context) error {
	var update telebot.Update
	if err := c.Bind(&update); err != nil {
		h.log.Error("Cannot bind telegram update", logger.ErrorField(err))
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.bot.ProcessUpdate(update)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("healthy", nil))
}
