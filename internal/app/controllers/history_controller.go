package controllers

import (
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"
	Logger "aicp-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HistoryController 处理访问历史请求
type HistoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHistoryController 创建一个新的访问历史控制器
func NewHistoryController(ctx *gin.Context, container *container.ServiceContainer) *HistoryController {
	return &HistoryController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHistoryFunc 返回一个处理访问历史请求的Gin处理函数
func HandleHistoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHistoryController(ctx, container)

		switch method {
		case "getHistory":
			controller.GetHistory()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetHistory 获取访客进出历史
// @Summary      Access history
// @Description  Entries and exits from house_access, newest first. user_id takes precedence over fraccionamiento_id.
// @Tags         History
// @Produce      json
// @Param        user_id query string false "Resident profile ID"
// @Param        fraccionamiento_id query string false "Community ID"
// @Success      200  {object}  SuccessResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /history [get]
func (c *HistoryController) GetHistory() {
	historyService := c.Container.GetService("history").(services.InterfaceHistoryService)
	rows, err := historyService.GetHistory(c.Ctx.Query("user_id"), c.Ctx.Query("fraccionamiento_id"))
	if err != nil {
		Logger.Error("读取访问历史失败(%s): %v", historyService.Backend(), err)
		response.Fail(c.Ctx, code.ErrHistoryUnavailable, nil)
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", rows, gin.H{"source": historyService.Backend()})
}
