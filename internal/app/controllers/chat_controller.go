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

// ChatController 处理聊天相关的请求（前端轮询）
type ChatController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewChatController 创建一个新的聊天控制器
func NewChatController(ctx *gin.Context, container *container.ServiceContainer) *ChatController {
	return &ChatController{
		Ctx:       ctx,
		Container: container,
	}
}

// ChatMessageRequest 表示发送消息请求
type ChatMessageRequest struct {
	SenderID          string  `json:"sender_id" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
	ReceiverID        *string `json:"receiver_id" example:"3a5d6c1e-0000-4000-8000-000000000001"`
	Message           string  `json:"message" example:"Buenas tardes, llegó un paquete"`
	ChatType          *string `json:"chat_type" example:"security"`
	FraccionamientoID *string `json:"fraccionamiento_id" example:"fracc-001"`
}

// HandleChatFunc 返回一个处理聊天请求的Gin处理函数
func HandleChatFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewChatController(ctx, container)

		switch method {
		case "getMessages":
			controller.GetMessages()
		case "sendMessage":
			controller.SendMessage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// GetMessages 获取消息：user_id 返回个人会话，fraccionamiento_id 返回小区消息
// @Summary      Poll chat messages
// @Description  With user_id returns the merged conversation of that user (optionally one chat_type). With fraccionamiento_id returns the community feed.
// @Tags         Chat
// @Produce      json
// @Param        user_id query string false "Profile ID"
// @Param        chat_type query string false "administration or security"
// @Param        fraccionamiento_id query string false "Community ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /chat/messages [get]
func (c *ChatController) GetMessages() {
	chatService := c.Container.GetService("chat").(services.InterfaceChatService)

	if userID := strings.TrimSpace(c.Ctx.Query("user_id")); userID != "" {
		messages, err := chatService.GetConversation(userID, c.Ctx.Query("chat_type"))
		if err != nil {
			respondServiceError(c.Ctx, err, "Error al obtener mensajes")
			return
		}
		response.Success(c.Ctx, messages)
		return
	}

	fraccionamientoID := strings.TrimSpace(c.Ctx.Query("fraccionamiento_id"))
	if fraccionamientoID == "" {
		response.ParamError(c.Ctx, "user_id o fraccionamiento_id es requerido")
		return
	}
	messages, err := chatService.GetCommunityMessages(fraccionamientoID)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener mensajes")
		return
	}
	response.Success(c.Ctx, messages)
}

// SendMessage 发送消息
// @Summary      Send chat message
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body ChatMessageRequest true "Message"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /chat/messages [post]
func (c *ChatController) SendMessage() {
	var req ChatMessageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}
	if strings.TrimSpace(req.SenderID) == "" || strings.TrimSpace(req.Message) == "" {
		response.FailWithMessage(c.Ctx, code.ErrChatMessageInvalid, "sender_id y message son requeridos", nil)
		return
	}

	senderID := strings.TrimSpace(req.SenderID)
	message := &models.ChatMessage{
		SenderID:          &senderID,
		ReceiverID:        req.ReceiverID,
		Message:           req.Message,
		ChatType:          req.ChatType,
		FraccionamientoID: req.FraccionamientoID,
	}

	chatService := c.Container.GetService("chat").(services.InterfaceChatService)
	if err := chatService.SendMessage(message); err != nil {
		respondServiceError(c.Ctx, err, "Error al enviar mensaje")
		return
	}
	response.Created(c.Ctx, "Mensaje enviado", message, nil)
}
