package controllers

import (
	"strings"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// PreferenceController 处理住户偏好请求
type PreferenceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPreferenceController 创建一个新的住户偏好控制器
func NewPreferenceController(ctx *gin.Context, container *container.ServiceContainer) *PreferenceController {
	return &PreferenceController{
		Ctx:       ctx,
		Container: container,
	}
}

// PreferenceRequest 表示保存住户偏好请求
type PreferenceRequest struct {
	UserID           string `json:"user_id" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
	AcceptsVisitors  *bool  `json:"accepts_visitors" example:"true"`
	AcceptsPersonnel *bool  `json:"accepts_personnel" example:"false"`
}

// PreferenceToggleRequest 表示修改单个开关请求
type PreferenceToggleRequest struct {
	UserID  string `json:"user_id" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
	Accepts *bool  `json:"accepts" example:"false"`
}

// HandlePreferenceFunc 返回一个处理住户偏好请求的Gin处理函数
func HandlePreferenceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPreferenceController(ctx, container)

		switch method {
		case "getPreference":
			controller.GetPreference()
		case "savePreference":
			controller.SavePreference()
		case "setAcceptsVisitors":
			controller.SetAcceptsVisitors()
		case "setAcceptsPersonnel":
			controller.SetAcceptsPersonnel()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *PreferenceController) service() services.InterfacePreferenceService {
	return c.Container.GetService("preference").(services.InterfacePreferenceService)
}

// GetPreference 获取住户偏好
// @Summary      Get resident preferences
// @Tags         Preference
// @Produce      json
// @Param        user_id query string true "Resident profile ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /resident-preferences [get]
func (c *PreferenceController) GetPreference() {
	userID := strings.TrimSpace(c.Ctx.Query("user_id"))
	if userID == "" {
		response.ParamError(c.Ctx, "user_id es requerido")
		return
	}

	preference, err := c.service().GetPreference(userID)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener preferencias")
		return
	}
	response.Success(c.Ctx, preference)
}

// SavePreference 保存住户偏好
// @Summary      Save resident preferences
// @Tags         Preference
// @Accept       json
// @Produce      json
// @Param        request body PreferenceRequest true "Preferences"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /resident-preferences [post]
func (c *PreferenceController) SavePreference() {
	var req PreferenceRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" || req.AcceptsVisitors == nil || req.AcceptsPersonnel == nil {
		response.ParamError(c.Ctx, "user_id, accepts_visitors y accepts_personnel son requeridos")
		return
	}

	preference, err := c.service().SavePreference(req.UserID, *req.AcceptsVisitors, *req.AcceptsPersonnel)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al guardar preferencias")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Preferencias guardadas", preference, nil)
}

// SetAcceptsVisitors 修改是否接受访客
// @Summary      Toggle visitors
// @Tags         Preference
// @Accept       json
// @Produce      json
// @Param        request body PreferenceToggleRequest true "Toggle"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /resident-preferences/visitors [put]
func (c *PreferenceController) SetAcceptsVisitors() {
	c.toggle(c.service().SetAcceptsVisitors)
}

// SetAcceptsPersonnel 修改是否接受服务人员
// @Summary      Toggle personnel
// @Tags         Preference
// @Accept       json
// @Produce      json
// @Param        request body PreferenceToggleRequest true "Toggle"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /resident-preferences/personnel [put]
func (c *PreferenceController) SetAcceptsPersonnel() {
	c.toggle(c.service().SetAcceptsPersonnel)
}

func (c *PreferenceController) toggle(set func(userID string, accepts bool) (*models.ResidentPreference, error)) {
	var req PreferenceToggleRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" || req.Accepts == nil {
		response.ParamError(c.Ctx, "user_id y accepts son requeridos")
		return
	}

	preference, err := set(req.UserID, *req.Accepts)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al guardar preferencias")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Preferencias guardadas", preference, nil)
}
