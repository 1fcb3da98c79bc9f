package http

import (
	"net/http"

	"crypto-pulse/internal/dto"
	"crypto-pulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupNotifier(base *echo.Group) {
	v1 := base.Group("/v1/notifier")
	{
		v1.POST("/run", h.RunNotifier)
	}
}

func (h *HttpAPIHandler) RunNotifier(c echo.Context) error {
	req := new(dto.RunNotifierRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if req.Reason != "" {
		h.log.Info("Manual notifier cycle requested", logger.StringField("reason", req.Reason))
	}

	response := dto.NewSuccessResponse("Notifier cycle completed", nil)
	if err := h.service.NotifierService.RunCycle(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}
