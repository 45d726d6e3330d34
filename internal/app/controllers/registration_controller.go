package controllers

import (
	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceRegistrationController 定义注册申请控制器接口
type InterfaceRegistrationController interface {
	GetPendingRegistrations()
	GetRegistrationStats()
	GetRegistration()
	CreateRegistration()
	ApproveRegistration()
	RejectRegistration()
}

// RegistrationController 处理注册申请相关的请求
type RegistrationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRegistrationController 创建一个新的注册申请控制器
func NewRegistrationController(ctx *gin.Context, container *container.ServiceContainer) *RegistrationController {
	return &RegistrationController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegistrationRequest 表示住户注册申请
type RegistrationRequest struct {
	FullName          string  `json:"full_name" example:"Ana López"`
	UserName          string  `json:"user_name" example:"alopez"`
	Email             string  `json:"email" example:"ana@correo.mx"`
	Password          string  `json:"password" example:"secreto123"`
	Phone             string  `json:"phone" example:"5512345678"`
	Role              string  `json:"role" example:"resident"`
	Status            string  `json:"status" example:"pending"`
	FraccionamientoID *string `json:"fraccionamiento_id" example:"fracc-001"`
	Street            string  `json:"street" example:"Calle Roble"`
	HouseNumber       string  `json:"house_number" example:"12"`
}

// RejectRequest 表示拒绝注册申请请求
type RejectRequest struct {
	Reason string `json:"reason" example:"Documentación incompleta"`
}

// HandleRegistrationFunc 返回一个处理注册申请请求的Gin处理函数
func HandleRegistrationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistrationController(ctx, container)

		switch method {
		case "getPendingRegistrations":
			controller.GetPendingRegistrations()
		case "getRegistrationStats":
			controller.GetRegistrationStats()
		case "getRegistration":
			controller.GetRegistration()
		case "createRegistration":
			controller.CreateRegistration()
		case "approveRegistration":
			controller.ApproveRegistration()
		case "rejectRegistration":
			controller.RejectRegistration()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *RegistrationController) service() services.InterfaceRegistrationService {
	return c.Container.GetService("registration").(services.InterfaceRegistrationService)
}

// GetPendingRegistrations 获取待审批的注册申请
// @Summary      List pending registrations
// @Tags         Registration
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /registrations [get]
func (c *RegistrationController) GetPendingRegistrations() {
	registrations, err := c.service().GetPendingRegistrations()
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener registros")
		return
	}
	response.Success(c.Ctx, registrations)
}

// GetRegistrationStats 获取注册申请统计
// @Summary      Registration statistics
// @Tags         Registration
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /registrations/stats [get]
func (c *RegistrationController) GetRegistrationStats() {
	stats, err := c.service().GetStats()
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener estadísticas")
		return
	}
	response.Success(c.Ctx, stats)
}

// GetRegistration 获取单个注册申请
// @Summary      Get registration
// @Tags         Registration
// @Produce      json
// @Param        id path string true "Registration ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /registrations/{id} [get]
func (c *RegistrationController) GetRegistration() {
	registration, err := c.service().GetRegistrationByID(c.Ctx.Param("id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener registro")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", registration, gin.H{"registration": registration})
}

// CreateRegistration 提交注册申请
// @Summary      Submit registration
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        request body RegistrationRequest true "Registration"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /registrations [post]
func (c *RegistrationController) CreateRegistration() {
	var req RegistrationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	registration := &models.PendingRegistration{
		FullName:          req.FullName,
		UserName:          req.UserName,
		Email:             req.Email,
		Password:          req.Password,
		Phone:             req.Phone,
		Role:              req.Role,
		Status:            req.Status,
		FraccionamientoID: req.FraccionamientoID,
		Street:            req.Street,
		HouseNumber:       req.HouseNumber,
	}
	if err := c.service().CreateRegistration(registration); err != nil {
		respondServiceError(c.Ctx, err, "Error al crear registro")
		return
	}

	response.Created(c.Ctx, "Registro creado", registration, gin.H{"registration": registration})
}

// ApproveRegistration 批准注册申请并创建档案
// @Summary      Approve registration
// @Description  Creates the profile and marks the registration approved in one transaction
// @Tags         Registration
// @Produce      json
// @Param        id path string true "Registration ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /registrations/{id}/approve [put]
func (c *RegistrationController) ApproveRegistration() {
	result, err := c.service().ApproveRegistration(c.Ctx.Param("id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al aprobar registro")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Registro aprobado", result, gin.H{
		"registration": result.Registration,
		"profile":      result.Profile,
	})
}

// RejectRegistration 拒绝注册申请
// @Summary      Reject registration
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        id path string true "Registration ID"
// @Param        request body RejectRequest false "Reason"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /registrations/{id}/reject [put]
func (c *RegistrationController) RejectRegistration() {
	var req RejectRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}

	registration, err := c.service().RejectRegistration(c.Ctx.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al rechazar registro")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Registro rechazado", registration, gin.H{"registration": registration})
}
