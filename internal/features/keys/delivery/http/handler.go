package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sheet-gateway-backend/internal/common/errors"
	"sheet-gateway-backend/internal/common/middleware"
	"sheet-gateway-backend/internal/features/keys/models"
	"sheet-gateway-backend/internal/features/keys/service"
)

type KeyHandler struct {
	service service.KeyService
}

func NewKeyHandler(service service.KeyService) *KeyHandler {
	return &KeyHandler{
		service: service,
	}
}

// RegisterRoutes mounts the key routes; admin guards the operator ones.
func (h *KeyHandler) RegisterRoutes(router *gin.RouterGroup, admin gin.HandlerFunc) {
	keys := router.Group("/keys")
	{
		keys.POST("/validate", h.validate)
		keys.GET("", h.listKeys)
		keys.POST("", admin, h.createKey)
		keys.DELETE("", admin, h.resetKeys)
		keys.PUT("/:key/status", admin, h.setStatus)
	}

	userKeys := router.Group("/user-keys")
	{
		userKeys.GET("", h.listUserKeys)
		userKeys.DELETE("", admin, h.resetUserKeys)
	}
}

// @Summary Validate a key
// @Description Checks the key presented by a user against its quota and status and records the use.
// @Description A refused key answers 200 with valid=false and the reason.
// @Tags keys
// @Accept json
// @Produce json
// @Param input body models.ValidateRequest true "Key and user"
// @Success 200 {object} models.ValidationResult
// @Failure 400 {object} middleware.ErrorResponse "Missing key or user"
// @Failure 404 {object} middleware.ErrorResponse "Unknown key"
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Failure 503 {object} middleware.ErrorResponse "Table busy"
// @Router /keys/validate [post]
func (h *KeyHandler) validate(c *gin.Context) {
	var input models.ValidateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Abort(c, errors.NewValidationError("body", err.Error()))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), input.Key, input.User)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary List keys
// @Tags keys
// @Produce json
// @Success 200 {array} models.KeyRecord
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /keys [get]
func (h *KeyHandler) listKeys(c *gin.Context) {
	keys, err := h.service.ListKeys(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, keys)
}

// @Summary Create a key
// @Tags keys
// @Accept json
// @Produce json
// @Security AdminToken
// @Param input body models.CreateKeyRequest true "Key and usage limit"
// @Success 201 {object} models.KeyRecord
// @Failure 400 {object} middleware.ErrorResponse "Invalid body"
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Failure 409 {object} middleware.ErrorResponse "Key exists"
// @Router /keys [post]
func (h *KeyHandler) createKey(c *gin.Context) {
	var input models.CreateKeyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Abort(c, errors.NewValidationError("body", err.Error()))
		return
	}

	key, err := h.service.CreateKey(c.Request.Context(), input.Key, *input.Limit)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, key)
}

// @Summary Set a key's status
// @Description Blocks or unblocks a key by hand. The message is returned to callers while the key is blocked.
// @Tags keys
// @Accept json
// @Produce json
// @Security AdminToken
// @Param key path string true "Key"
// @Param input body models.StatusRequest true "New status"
// @Success 200 {object} models.KeyRecord
// @Failure 400 {object} middleware.ErrorResponse "Invalid body"
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Failure 404 {object} middleware.ErrorResponse "Unknown key"
// @Router /keys/{key}/status [put]
func (h *KeyHandler) setStatus(c *gin.Context) {
	var input models.StatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Abort(c, errors.NewValidationError("body", err.Error()))
		return
	}

	key, err := h.service.SetKeyStatus(c.Request.Context(), c.Param("key"), input.Status, input.Message)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, key)
}

// @Summary Reset keys
// @Description Clears the key table down to its header row
// @Tags keys
// @Produce json
// @Security AdminToken
// @Success 200 {object} map[string]string
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Router /keys [delete]
func (h *KeyHandler) resetKeys(c *gin.Context) {
	if err := h.service.ResetKeys(c.Request.Context()); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Keys reset"})
}

// @Summary List user keys
// @Tags keys
// @Produce json
// @Success 200 {array} models.UserKeyRecord
// @Failure 502 {object} middleware.ErrorResponse "Store failure"
// @Router /user-keys [get]
func (h *KeyHandler) listUserKeys(c *gin.Context) {
	users, err := h.service.ListUserKeys(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Reset user keys
// @Description Clears the user-key table down to its header row
// @Tags keys
// @Produce json
// @Security AdminToken
// @Success 200 {object} map[string]string
// @Failure 403 {object} middleware.ErrorResponse "Admin token required"
// @Router /user-keys [delete]
func (h *KeyHandler) resetUserKeys(c *gin.Context) {
	if err := h.service.ResetUserKeys(c.Request.Context()); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User keys reset"})
}
