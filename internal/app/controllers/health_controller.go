package controllers

import (
	"time"

	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"
	"aicp-http-service/internal/infrastructure/database"
	Logger "aicp-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "index":
			controller.Index()
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// Index API 首页
// @Summary      API index
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       / [get]
func (h *HealthCheckController) Index() {
	response.SuccessWithPayload(h.Ctx, code.StatusOK, "AICP API funcionando", nil, gin.H{
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":          "/api/auth",
			"profiles":      "/api/profiles",
			"visitors":      "/api/visitors",
			"registrations": "/api/registrations",
			"incidents":     "/api/incidents",
			"banners":       "/api/banners",
			"notifications": "/api/notifications",
			"chat":          "/api/chat",
			"history":       "/api/history",
			"preferences":   "/api/resident-preferences",
			"health":        "/api/health",
			"metrics":       "/metrics",
			"docs":          "/swagger/index.html",
		},
	})
}

// Ping 健康检查端点
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /ping [get]
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health 检查数据库连接
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /health [get]
func (h *HealthCheckController) Health() {
	if err := database.Ping(h.Container.GetDB()); err != nil {
		Logger.Error("数据库健康检查失败: %v", err)
		response.FailWithMessage(h.Ctx, code.ErrConnectionFailed, "Base de datos no disponible", nil)
		return
	}

	response.Success(h.Ctx, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"history":   h.Container.GetService("history").(services.InterfaceHistoryService).Backend(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
