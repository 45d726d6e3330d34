package controllers

import (
	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// BannerController 处理横幅相关的请求
type BannerController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBannerController 创建一个新的横幅控制器
func NewBannerController(ctx *gin.Context, container *container.ServiceContainer) *BannerController {
	return &BannerController{
		Ctx:       ctx,
		Container: container,
	}
}

// BannerRequest 表示创建横幅请求
type BannerRequest struct {
	Title             string  `json:"title" example:"Asamblea vecinal"`
	Description       string  `json:"description" example:"Este sábado a las 10:00"`
	CTAText           string  `json:"cta_text" example:"Ver más"`
	CTAURL            string  `json:"cta_url" example:"https://aicp.mx/asamblea"`
	Icon              string  `json:"icon" example:"megaphone"`
	IsActive          *bool   `json:"is_active" example:"true"`
	Order             int     `json:"order" example:"1"`
	FraccionamientoID *string `json:"fraccionamiento_id" example:"fracc-001"`
}

// BannerStatusRequest 表示启用/停用横幅请求
type BannerStatusRequest struct {
	IsActive *bool `json:"is_active" example:"false"`
}

// HandleBannerFunc 返回一个处理横幅请求的Gin处理函数
func HandleBannerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBannerController(ctx, container)

		switch method {
		case "getBanners":
			controller.GetBanners()
		case "getActiveBanners":
			controller.GetActiveBanners()
		case "getBanner":
			controller.GetBanner()
		case "createBanner":
			controller.CreateBanner()
		case "updateBanner":
			controller.UpdateBanner()
		case "setBannerStatus":
			controller.SetBannerStatus()
		case "deleteBanner":
			controller.DeleteBanner()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *BannerController) service() services.InterfaceBannerService {
	return c.Container.GetService("banner").(services.InterfaceBannerService)
}

// GetBanners 获取全部横幅
// @Summary      List all banners
// @Tags         Banner
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /banners [get]
func (c *BannerController) GetBanners() {
	banners, err := c.service().GetAllBanners()
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener banners")
		return
	}
	response.Success(c.Ctx, banners)
}

// GetActiveBanners 获取启用的横幅
// @Summary      List active banners
// @Tags         Banner
// @Produce      json
// @Param        fraccionamiento_id query string false "Community ID"
// @Success      200  {object}  SuccessResponse
// @Router       /banners/active [get]
func (c *BannerController) GetActiveBanners() {
	banners, err := c.service().GetActiveBanners(c.Ctx.Query("fraccionamiento_id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener banners")
		return
	}
	response.Success(c.Ctx, banners)
}

// GetBanner 获取单个横幅
// @Summary      Get banner
// @Tags         Banner
// @Produce      json
// @Param        id path int true "Banner ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /banners/{id} [get]
func (c *BannerController) GetBanner() {
	id, ok := parseID(c.Ctx, "ID de banner inválido")
	if !ok {
		return
	}
	banner, err := c.service().GetBannerByID(id)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener banner")
		return
	}
	response.Success(c.Ctx, banner)
}

// CreateBanner 创建横幅，默认启用
// @Summary      Create banner
// @Tags         Banner
// @Accept       json
// @Produce      json
// @Param        request body BannerRequest true "Banner"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /banners [post]
func (c *BannerController) CreateBanner() {
	var req BannerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	banner := &models.Banner{
		Title:             req.Title,
		Description:       req.Description,
		CTAText:           req.CTAText,
		CTAURL:            req.CTAURL,
		Icon:              req.Icon,
		IsActive:          req.IsActive == nil || *req.IsActive,
		DisplayOrder:      req.Order,
		FraccionamientoID: req.FraccionamientoID,
	}
	if err := c.service().CreateBanner(banner); err != nil {
		respondServiceError(c.Ctx, err, "Error al crear banner")
		return
	}
	response.Created(c.Ctx, "Banner creado", banner, nil)
}

// UpdateBanner 更新横幅
// @Summary      Update banner
// @Tags         Banner
// @Accept       json
// @Produce      json
// @Param        id path int true "Banner ID"
// @Param        request body map[string]interface{} true "Columns to update"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /banners/{id} [put]
func (c *BannerController) UpdateBanner() {
	id, ok := parseID(c.Ctx, "ID de banner inválido")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	banner, err := c.service().UpdateBanner(id, updates)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar banner")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Banner actualizado", banner, nil)
}

// SetBannerStatus 启用或停用横幅
// @Summary      Toggle banner
// @Tags         Banner
// @Accept       json
// @Produce      json
// @Param        id path int true "Banner ID"
// @Param        request body BannerStatusRequest true "Status"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /banners/{id}/status [put]
func (c *BannerController) SetBannerStatus() {
	id, ok := parseID(c.Ctx, "ID de banner inválido")
	if !ok {
		return
	}
	var req BannerStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.ParamError(c.Ctx, "is_active es requerido")
		return
	}

	banner, err := c.service().SetBannerStatus(id, *req.IsActive)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar banner")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Banner actualizado", banner, nil)
}

// DeleteBanner 删除横幅
// @Summary      Delete banner
// @Tags         Banner
// @Produce      json
// @Param        id path int true "Banner ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /banners/{id} [delete]
func (c *BannerController) DeleteBanner() {
	id, ok := parseID(c.Ctx, "ID de banner inválido")
	if !ok {
		return
	}
	if err := c.service().DeleteBanner(id); err != nil {
		respondServiceError(c.Ctx, err, "Error al eliminar banner")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Banner eliminado", nil, nil)
}
