package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/common/middleware"
	"sheet-gateway-backend/internal/features/records/models"
	"sheet-gateway-backend/internal/features/records/service"
)

type RecordHandler struct {
	service service.RecordService
}

func NewRecordHandler(service service.RecordService) *RecordHandler {
	return &RecordHandler{
		service: service,
	}
}

// RegisterRoutes mounts the record routes; admin guards the ones that rewrite
// or reset tables.
func (h *RecordHandler) RegisterRoutes(router *gin.RouterGroup, admin gin.HandlerFunc) {
	router.POST("/write", h.write)
	router.GET("/read", h.read)
	router.PUT("/update", admin, h.update)

	activity := router.Group("/activity")
	{
		activity.GET("", h.listActivity)
		activity.DELETE("", admin, h.resetActivity)
	}

	devices := router.Group("/devices")
	{
		devices.GET("", h.listDevices)
		devices.DELETE("", admin, h.resetDevices)
	}
}

// @Summary Write a batch of rows
// @Description Appends the rows to the batch log, then merges them into the activity and device tables
// @Tags records
// @Accept json
// @Produce json
// @Param input body models.WriteRequest true "Rows of [user, device, balance, mode, strategy]"
// @Success 200 {object} models.WriteResult
// @Failure 400 {object} middleware.ErrorResponse "Invalid body"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Failure 503 {object} middleware.ErrorResponse "Table busy"
// @Router /write [post]
func (h *RecordHandler) write(c *gin.Context) {
	var input models.WriteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Abort(c, errors.NewValidationError("values", err.Error()))
		return
	}

	result, err := h.service.Write(c.Request.Context(), models.Cells(input.Values))
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Read a range
// @Description Returns the cells of an A1 range of a table, the batch log by default
// @Tags records
// @Produce json
// @Param range query string false "A1 range" default(A1:D10)
// @Param table query string false "Table (sheet tab) name"
// @Success 200 {array} []string
// @Failure 400 {object} middleware.ErrorResponse "Invalid range"
// @Failure 404 {object} middleware.ErrorResponse "Unknown table"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /read [get]
func (h *RecordHandler) read(c *gin.Context) {
	rows, err := h.service.ReadRange(c.Request.Context(), c.Query("table"), c.Query("range"))
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary Update a range
// @Description Overwrites an A1 range of a table with the given values
// @Tags records
// @Accept json
// @Produce json
// @Security AdminToken
// @Param input body models.UpdateRequest true "Range and values"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid body or range"
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Failure 404 {object} middleware.ErrorResponse "Unknown table"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /update [put]
func (h *RecordHandler) update(c *gin.Context) {
	var input models.UpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Abort(c, errors.NewValidationError("body", err.Error()))
		return
	}

	if err := h.service.UpdateRange(c.Request.Context(), input.Table, input.Range, models.Cells(input.Values)); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Data updated"})
}

// @Summary List user activity
// @Tags records
// @Produce json
// @Success 200 {array} models.ActivityRecord
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /activity [get]
func (h *RecordHandler) listActivity(c *gin.Context) {
	records, err := h.service.ListActivity(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary Reset user activity
// @Description Clears the activity table down to its header row
// @Tags records
// @Produce json
// @Security AdminToken
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /activity [delete]
func (h *RecordHandler) resetActivity(c *gin.Context) {
	if err := h.service.ResetActivity(c.Request.Context()); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Activity reset"})
}

// @Summary List devices
// @Tags records
// @Produce json
// @Success 200 {array} models.DeviceRecord
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /devices [get]
func (h *RecordHandler) listDevices(c *gin.Context) {
	records, err := h.service.ListDevices(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary Reset devices
// @Description Clears the device table down to its header row
// @Tags records
// @Produce json
// @Security AdminToken
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /devices [delete]
func (h *RecordHandler) resetDevices(c *gin.Context) {
	if err := h.service.ResetDevices(c.Request.Context()); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Devices reset"})
}
