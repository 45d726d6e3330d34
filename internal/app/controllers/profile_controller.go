package controllers

import (
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceProfileController 定义档案控制器接口
type InterfaceProfileController interface {
	GetProfiles()
	GetProfile()
	UpdateProfile()
}

// ProfileController 处理档案相关的请求
type ProfileController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProfileController 创建一个新的档案控制器
func NewProfileController(ctx *gin.Context, container *container.ServiceContainer) *ProfileController {
	return &ProfileController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleProfileFunc 返回一个处理档案请求的Gin处理函数
func HandleProfileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProfileController(ctx, container)

		switch method {
		case "getProfiles":
			controller.GetProfiles()
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetProfiles 获取档案列表
// @Summary      List profiles
// @Tags         Profile
// @Produce      json
// @Param        role query string false "admin, guard, resident or visitor"
// @Param        fraccionamiento_id query string false "Community ID"
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /profiles [get]
func (c *ProfileController) GetProfiles() {
	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	profiles, err := profileService.GetProfiles(c.Ctx.Query("role"), c.Ctx.Query("fraccionamiento_id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener perfiles")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", profiles, gin.H{"profiles": profiles})
}

// GetProfile 获取单个档案
// @Summary      Get profile
// @Tags         Profile
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{id} [get]
func (c *ProfileController) GetProfile() {
	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	profile, err := profileService.GetProfileByID(c.Ctx.Param("id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener perfil")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", profile, gin.H{"profile": profile})
}

// UpdateProfile 更新档案，只接受白名单字段
// @Summary      Update profile
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        id path string true "Profile ID"
// @Param        request body map[string]interface{} true "Columns to update"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{id} [put]
func (c *ProfileController) UpdateProfile() {
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	profileService := c.Container.GetService("profile").(services.InterfaceProfileService)
	profile, err := profileService.UpdateProfile(c.Ctx.Param("id"), updates)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar perfil")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Perfil actualizado", profile, gin.H{"profile": profile})
}
