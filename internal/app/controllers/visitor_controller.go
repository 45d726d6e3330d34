package controllers

import (
	"strings"

	"aicp-http-service/internal/app/middleware"
	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceVisitorController 定义访客控制器接口
type InterfaceVisitorController interface {
	GetVisitors()
	GetVisitorStats()
	GetVisitor()
	CreateVisitor()
	UpdateVisitor()
	DeleteVisitor()
	GenerateQR()
	DecodeQR()
	RegisterEntry()
	RegisterExit()
}

// VisitorController 处理访客相关的请求
type VisitorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVisitorController 创建一个新的访客控制器
func NewVisitorController(ctx *gin.Context, container *container.ServiceContainer) *VisitorController {
	return &VisitorController{
		Ctx:       ctx,
		Container: container,
	}
}

// VisitorRequest 表示创建访客请求
type VisitorRequest struct {
	Name           string  `json:"name" example:"Juan Pérez"`
	Email          string  `json:"email" example:"juan@correo.mx"`
	Phone          string  `json:"phone" example:"5512345678"`
	Type           string  `json:"type" example:"one-time"` // visitor, one-time, event, provider
	Status         string  `json:"status" example:"active"`
	CreatedBy      *string `json:"created_by" example:"8f0c1f7e-4b5e-4c36-9a7e-2f1d7f1f9a10"`
	EventDate      *string `json:"event_date" example:"2024-12-24"`
	EventTime      *string `json:"event_time" example:"20:00"`
	NumberOfGuests *int    `json:"number_of_guests" example:"10"`
	ServiceDate    *string `json:"service_date" example:"2024-12-20"`
}

// DecodeQRRequest 表示解析二维码请求
type DecodeQRRequest struct {
	QRData string `json:"qr_data" example:"{\"type\":\"visitor\",\"visitor_id\":1}"`
}

// AccessRequest 表示门卫登记进出请求
type AccessRequest struct {
	GuardID string `json:"guard_id" example:"3a5d6c1e-0000-4000-8000-000000000001"`
}

// HandleVisitorFunc 返回一个处理访客请求的Gin处理函数
func HandleVisitorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVisitorController(ctx, container)

		switch method {
		case "getVisitors":
			controller.GetVisitors()
		case "getVisitorStats":
			controller.GetVisitorStats()
		case "getVisitor":
			controller.GetVisitor()
		case "createVisitor":
			controller.CreateVisitor()
		case "updateVisitor":
			controller.UpdateVisitor()
		case "deleteVisitor":
			controller.DeleteVisitor()
		case "generateQR":
			controller.GenerateQR()
		case "decodeQR":
			controller.DecodeQR()
		case "registerEntry":
			controller.RegisterEntry()
		case "registerExit":
			controller.RegisterExit()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *VisitorController) service() services.InterfaceVisitorService {
	return c.Container.GetService("visitor").(services.InterfaceVisitorService)
}

// GetVisitors 获取访客列表
// @Summary      List visitors
// @Description  Visitors joined with the resident that registered them, newest first. Filters are combined.
// @Tags         Visitor
// @Produce      json
// @Param        user_id query string false "Resident profile ID"
// @Param        status query string false "active, dentro, salio or inactive"
// @Param        type query string false "visitor, one-time, event or provider"
// @Param        search query string false "Substring of the visitor name"
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /visitors [get]
func (c *VisitorController) GetVisitors() {
	filter := services.VisitorFilter{
		UserID: c.Ctx.Query("user_id"),
		Status: c.Ctx.Query("status"),
		Type:   c.Ctx.Query("type"),
		Search: c.Ctx.Query("search"),
	}

	visitors, err := c.service().GetVisitors(filter)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener visitantes")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", visitors, gin.H{"visitors": visitors})
}

// GetVisitorStats 获取访客统计
// @Summary      Visitor statistics
// @Tags         Visitor
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /visitors/stats [get]
func (c *VisitorController) GetVisitorStats() {
	stats, err := c.service().GetStats()
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener estadísticas")
		return
	}
	response.Success(c.Ctx, stats)
}

// GetVisitor 获取单个访客
// @Summary      Get visitor
// @Tags         Visitor
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visitors/{id} [get]
func (c *VisitorController) GetVisitor() {
	id, ok := parseID(c.Ctx, "ID de visitante inválido")
	if !ok {
		return
	}

	visitor, err := c.service().GetVisitorByID(id)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener visitante")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", visitor, gin.H{"visitor": visitor})
}

// CreateVisitor 创建访客
// @Summary      Create visitor
// @Description  One-time visitors get their QR code generated right away
// @Tags         Visitor
// @Accept       json
// @Produce      json
// @Param        request body VisitorRequest true "Visitor"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /visitors [post]
func (c *VisitorController) CreateVisitor() {
	var req VisitorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		response.ParamError(c.Ctx, "El nombre del visitante es requerido")
		return
	}

	visitor := &models.Visitor{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		Type:           req.Type,
		Status:         req.Status,
		CreatedBy:      req.CreatedBy,
		EventDate:      req.EventDate,
		EventTime:      req.EventTime,
		NumberOfGuests: req.NumberOfGuests,
		ServiceDate:    req.ServiceDate,
	}

	created, qr, err := c.service().CreateVisitor(visitor)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al crear visitante")
		return
	}

	payload := gin.H{"visitor": created}
	if qr != nil {
		payload["qr_code_url"] = qr.URL
		payload["qr_data"] = qr.Data
	}
	response.Created(c.Ctx, "Visitante creado", created, payload)
}

// UpdateVisitor 更新访客，只接受白名单字段
// @Summary      Update visitor
// @Tags         Visitor
// @Accept       json
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Param        request body map[string]interface{} true "Columns to update"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visitors/{id} [put]
func (c *VisitorController) UpdateVisitor() {
	id, ok := parseID(c.Ctx, "ID de visitante inválido")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	visitor, err := c.service().UpdateVisitor(id, updates)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar visitante")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Visitante actualizado", visitor, gin.H{"visitor": visitor})
}

// DeleteVisitor 删除访客
// @Summary      Delete visitor
// @Tags         Visitor
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visitors/{id} [delete]
func (c *VisitorController) DeleteVisitor() {
	id, ok := parseID(c.Ctx, "ID de visitante inválido")
	if !ok {
		return
	}

	if err := c.service().DeleteVisitor(id); err != nil {
		respondServiceError(c.Ctx, err, "Error al eliminar visitante")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Visitante eliminado", nil, nil)
}

// GenerateQR 生成访客二维码
// @Summary      Generate QR code
// @Description  Only visitor and one-time types. The image URL points at the external QR API and is stored in codigo_qr.
// @Tags         Visitor
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visitors/{id}/generate-qr [post]
func (c *VisitorController) GenerateQR() {
	id, ok := parseID(c.Ctx, "ID de visitante inválido")
	if !ok {
		return
	}

	qr, err := c.service().GenerateQR(id)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al generar código QR")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Código QR generado", qr, gin.H{
		"visitor":     qr.Visitor,
		"qr_code_url": qr.URL,
		"qr_data":     qr.Data,
	})
}

// DecodeQR 解析二维码内容
// @Summary      Decode QR data
// @Tags         Visitor
// @Accept       json
// @Produce      json
// @Param        request body DecodeQRRequest true "Raw QR content"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /visitors/decode-qr [post]
func (c *VisitorController) DecodeQR() {
	var req DecodeQRRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	if strings.TrimSpace(req.QRData) == "" {
		response.ParamError(c.Ctx, "qr_data es requerido")
		return
	}

	decoded, err := c.service().DecodeQR(req.QRData)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al decodificar código QR")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", nil, gin.H{
		"qr_data":      decoded.Data,
		"visitor_info": decoded.VisitorInfo,
	})
}

// RegisterEntry 门卫登记访客入场
// @Summary      Register visitor entry
// @Description  A one-time pass is refused once expired or already used
// @Tags         Visitor
// @Accept       json
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Param        request body AccessRequest false "Guard"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      410  {object}  ErrorResponse
// @Router       /visitors/{id}/entry [post]
func (c *VisitorController) RegisterEntry() {
	c.registerAccess(true)
}

// RegisterExit 门卫登记访客离场
// @Summary      Register visitor exit
// @Tags         Visitor
// @Accept       json
// @Produce      json
// @Param        id path int true "Visitor ID"
// @Param        request body AccessRequest false "Guard"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /visitors/{id}/exit [post]
func (c *VisitorController) RegisterExit() {
	c.registerAccess(false)
}

func (c *VisitorController) registerAccess(entry bool) {
	id, ok := parseID(c.Ctx, "ID de visitante inválido")
	if !ok {
		return
	}

	var req AccessRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	// 未指定门卫时使用登录令牌中的用户
	if req.GuardID == "" {
		req.GuardID, _ = middleware.CurrentUserID(c.Ctx)
	}

	var (
		visitor *models.Visitor
		err     error
		message string
	)
	if entry {
		visitor, err = c.service().RegisterEntry(id, req.GuardID)
		message = "Entrada registrada"
	} else {
		visitor, err = c.service().RegisterExit(id, req.GuardID)
		message = "Salida registrada"
	}
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al registrar acceso")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, message, visitor, gin.H{"visitor": visitor})
}
