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

// NotificationController 处理通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// NotificationRequest 表示创建通知请求
type NotificationRequest struct {
	UserID  string `json:"user_id" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
	Title   string `json:"title" example:"Visita registrada"`
	Message string `json:"message" example:"Juan Pérez ingresó a las 18:00"`
	Type    string `json:"type" example:"info"`
}

// MarkAllReadRequest 表示全部标记已读请求
type MarkAllReadRequest struct {
	UserID string `json:"user_id" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "createNotification":
			controller.CreateNotification()
		case "markAsRead":
			controller.MarkAsRead()
		case "markAllAsRead":
			controller.MarkAllAsRead()
		case "deleteNotification":
			controller.DeleteNotification()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *NotificationController) service() services.InterfaceNotificationService {
	return c.Container.GetService("notification").(services.InterfaceNotificationService)
}

// GetNotifications 获取用户通知
// @Summary      List notifications of a user
// @Tags         Notification
// @Produce      json
// @Param        user_id query string true "Profile ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications [get]
func (c *NotificationController) GetNotifications() {
	userID := strings.TrimSpace(c.Ctx.Query("user_id"))
	if userID == "" {
		response.ParamError(c.Ctx, "user_id es requerido")
		return
	}

	notifications, err := c.service().GetNotificationsByUser(userID)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener notificaciones")
		return
	}
	response.Success(c.Ctx, notifications)
}

// CreateNotification 创建通知
// @Summary      Create notification
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body NotificationRequest true "Notification"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications [post]
func (c *NotificationController) CreateNotification() {
	var req NotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if err := c.service().CreateNotification(notification); err != nil {
		respondServiceError(c.Ctx, err, "Error al crear notificación")
		return
	}
	response.Created(c.Ctx, "Notificación creada", notification, nil)
}

// MarkAsRead 标记单条通知已读
// @Summary      Mark notification as read
// @Tags         Notification
// @Produce      json
// @Param        id path int true "Notification ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead() {
	id, ok := parseID(c.Ctx, "ID de notificación inválido")
	if !ok {
		return
	}
	if err := c.service().MarkAsRead(id); err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar notificación")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Notificación marcada como leída", nil, nil)
}

// MarkAllAsRead 标记用户全部通知已读
// @Summary      Mark all notifications as read
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body MarkAllReadRequest true "User"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead() {
	var req MarkAllReadRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		response.ParamError(c.Ctx, "user_id es requerido")
		return
	}

	updated, err := c.service().MarkAllAsRead(req.UserID)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar notificaciones")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Notificaciones marcadas como leídas", nil, gin.H{"updated": updated})
}

// DeleteNotification 删除通知
// @Summary      Delete notification
// @Tags         Notification
// @Produce      json
// @Param        id path int true "Notification ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification() {
	id, ok := parseID(c.Ctx, "ID de notificación inválido")
	if !ok {
		return
	}
	if err := c.service().DeleteNotification(id); err != nil {
		respondServiceError(c.Ctx, err, "Error al eliminar notificación")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Notificación eliminada", nil, nil)
}
