package http

import (
	"context"

	"crypto-pulse/internal/service"
	"crypto-pulse/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"
)

// UpdateProcessor feeds an incoming webhook update into the bot.
type UpdateProcessor interface {
	ProcessUpdate(update telebot.Update)
}

type HttpAPIHandler struct {
	echo      *echo.Echo
	log       *logger.Logger
	validator *goValidator.Validate
	service   *service.Service
	bot       UpdateProcessor
}

func NewHttpAPIHandler(
	ctx context.Context,
	echo *echo.Echo,
	log *logger.Logger,
	validator *goValidator.Validate,
	service *service.Service,
	bot UpdateProcessor,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		log:       log,
		validator: validator,
		service:   service,
		bot:       bot,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupTelegram(base)
	h.SetupNotifier(base)
	h.SetupHealth(base)
}
