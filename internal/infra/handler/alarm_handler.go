package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/calendar"
)

type AlarmHandler struct {
	useCase app.AlarmUseCase
}

func NewAlarmHandler(useCase app.AlarmUseCase) *AlarmHandler {
	return &AlarmHandler{
		useCase: useCase,
	}
}

func (h *AlarmHandler) CreateAlarm(c *gin.Context) {
	slog.Info("handling create alarm request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var req CreateAlarmRequest
	if !h.bindJSON(c, &req) {
		return
	}

	input := app.CreateAlarmInput{
		Time:          req.Time,
		RepeatDays:    req.RepeatDays,
		Label:         req.Label,
		Enabled:       req.Enabled,
		BackupEnabled: req.BackupEnabled,
		BackupMinutes: req.BackupMinutes,
	}

	output, err := h.useCase.CreateAlarm(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarm created successfully",
		"alarm_id", output.ID,
		"enabled", output.Enabled,
	)
	c.JSON(http.StatusCreated, FromDTO(output))
}

func (h *AlarmHandler) ListAlarms(c *gin.Context) {
	output, err := h.useCase.ListAlarms(c.Request.Context())
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTOs(output))
}

func (h *AlarmHandler) GetAlarm(c *gin.Context) {
	output, err := h.useCase.GetAlarm(c.Request.Context(), app.GetAlarmInput{
		ID: c.Param("id"),
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *AlarmHandler) UpdateAlarm(c *gin.Context) {
	id := c.Param("id")

	slog.Info("handling update alarm request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"alarm_id", id,
	)

	var req UpdateAlarmRequest
	if !h.bindJSON(c, &req) {
		return
	}

	input := app.UpdateAlarmInput{
		ID:            id,
		Time:          req.Time,
		RepeatDays:    req.RepeatDays,
		Label:         req.Label,
		Enabled:       req.Enabled,
		BackupEnabled: req.BackupEnabled,
		BackupMinutes: req.BackupMinutes,
	}

	output, err := h.useCase.UpdateAlarm(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarm updated successfully",
		"alarm_id", output.ID,
	)
	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *AlarmHandler) DeleteAlarm(c *gin.Context) {
	id := c.Param("id")

	slog.Info("handling delete alarm request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"alarm_id", id,
	)

	if err := h.useCase.DeleteAlarm(c.Request.Context(), app.DeleteAlarmInput{ID: id}); err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarm deleted successfully",
		"alarm_id", id,
	)
	c.Status(http.StatusNoContent)
}

func (h *AlarmHandler) SetEnabled(c *gin.Context) {
	id := c.Param("id")

	var req SetEnabledRequest
	if !h.bindJSON(c, &req) {
		return
	}

	output, err := h.useCase.SetAlarmEnabled(c.Request.Context(), app.SetAlarmEnabledInput{
		ID:      id,
		Enabled: *req.Enabled,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarm enablement updated successfully",
		"alarm_id", output.ID,
		"enabled", output.Enabled,
	)
	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *AlarmHandler) AcknowledgeAlarm(c *gin.Context) {
	id := c.Param("id")

	slog.Info("handling acknowledge alarm request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"alarm_id", id,
	)

	var req AcknowledgeRequest
	if c.Request.ContentLength != 0 {
		if !h.bindJSON(c, &req) {
			return
		}
	}

	output, err := h.useCase.AcknowledgeAlarm(c.Request.Context(), app.AcknowledgeAlarmInput{
		ID:   id,
		Kind: req.Kind,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarm acknowledged successfully",
		"alarm_id", output.ID,
		"state", output.State,
	)
	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *AlarmHandler) ReconcileAll(c *gin.Context) {
	output, err := h.useCase.ReconcileAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.Info("alarms reconciled",
		"alarms", output.Alarms,
		"reminders", output.Reminders,
	)
	c.JSON(http.StatusOK, ReconcileResponse{
		Alarms:    output.Alarms,
		Reminders: output.Reminders,
	})
}

func (h *AlarmHandler) ExportCalendar(c *gin.Context) {
	output, err := h.useCase.ListAlarms(c.Request.Context())
	if err != nil {
		h.handleError(c, err)

		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, calendar.Build(output.Alarms, time.Now())); err != nil {
		slog.Error("failed to export calendar",
			"error", err,
		)
		h.handleError(c, err)

		return
	}

	c.Header("Content-Disposition", `attachment; filename="alarms.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *AlarmHandler) NotifierStatus(c *gin.Context) {
	output := h.useCase.NotifierStatus(c.Request.Context())

	c.JSON(http.StatusOK, NotifierStatusResponse{
		AuthorizationCapable: output.AuthorizationCapable,
	})
}

func (h *AlarmHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn("request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   "",
		})

		return false
	}

	return true
}

func (h *AlarmHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
			Field:   "",
		})

		return
	}

	if errors.Is(err, app.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "already_exists",
			Message: "resource already exists",
			Field:   "",
		})

		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func (h *AlarmHandler) RegisterRoutes(router *gin.RouterGroup) {
	alarms := router.Group("/alarms")
	{
		alarms.POST("", h.CreateAlarm)
		alarms.GET("", h.ListAlarms)
		alarms.POST("/reconcile", h.ReconcileAll)
		alarms.GET("/calendar.ics", h.ExportCalendar)
		alarms.GET("/:id", h.GetAlarm)
		alarms.PUT("/:id", h.UpdateAlarm)
		alarms.DELETE("/:id", h.DeleteAlarm)
		alarms.PUT("/:id/enabled", h.SetEnabled)
		alarms.POST("/:id/ack", h.AcknowledgeAlarm)
	}

	router.GET("/notifier/status", h.NotifierStatus)
}
