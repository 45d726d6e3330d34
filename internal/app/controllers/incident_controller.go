package controllers

import (
	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"
	"aicp-http-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InterfaceIncidentController 定义事件控制器接口
type InterfaceIncidentController interface {
	GetIncidents()
	GetIncident()
	CreateIncident()
	UpdateIncident()
	DeleteIncident()
	GetIncidentsByType()
	GetIncidentStats()
}

// IncidentController 处理安全事件相关的请求
type IncidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIncidentController 创建一个新的事件控制器
func NewIncidentController(ctx *gin.Context, container *container.ServiceContainer) *IncidentController {
	return &IncidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// IncidentRequest 表示上报事件请求
type IncidentRequest struct {
	IncidentType      string  `json:"incident_type" example:"robo"`
	Description       string  `json:"description" example:"Se reportó un robo en la caseta"`
	Location          string  `json:"location" example:"Entrada principal"`
	Severity          string  `json:"severity" example:"high"`     // low, medium, high, critical
	Status            string  `json:"status" example:"reported"`   // reported, in_progress, resolved, closed
	ReportedBy        *string `json:"reported_by" example:"guard-001"`
	ReportedAt        string  `json:"reported_at" example:"2024-01-10T08:00:00Z"`
	FraccionamientoID *string `json:"fraccionamiento_id" example:"fracc-001"`
}

// HandleIncidentFunc 返回一个处理事件请求的Gin处理函数
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIncidentController(ctx, container)

		switch method {
		case "getIncidents":
			controller.GetIncidents()
		case "getIncident":
			controller.GetIncident()
		case "createIncident":
			controller.CreateIncident()
		case "updateIncident":
			controller.UpdateIncident()
		case "deleteIncident":
			controller.DeleteIncident()
		case "getIncidentsByType":
			controller.GetIncidentsByType()
		case "getIncidentStats":
			controller.GetIncidentStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

func (c *IncidentController) service() services.InterfaceIncidentService {
	return c.Container.GetService("incident").(services.InterfaceIncidentService)
}

func (c *IncidentController) filter() services.IncidentFilter {
	return services.IncidentFilter{
		Status:            c.Ctx.Query("status"),
		IncidentType:      c.Ctx.Query("incident_type"),
		Severity:          c.Ctx.Query("severity"),
		FraccionamientoID: c.Ctx.Query("fraccionamiento_id"),
		StartDate:         c.Ctx.Query("start_date"),
		EndDate:           c.Ctx.Query("end_date"),
	}
}

// GetIncidents 获取事件列表
// @Summary      List incidents
// @Tags         Incident
// @Produce      json
// @Param        status query string false "Status"
// @Param        incident_type query string false "Type"
// @Param        severity query string false "Severity"
// @Param        fraccionamiento_id query string false "Community ID"
// @Param        start_date query string false "RFC3339 or YYYY-MM-DD"
// @Param        end_date query string false "RFC3339 or YYYY-MM-DD, date-only includes the whole day"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /incidents [get]
func (c *IncidentController) GetIncidents() {
	incidents, err := c.service().GetIncidents(c.filter())
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener incidentes")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", incidents, gin.H{"count": len(incidents)})
}

// GetIncident 获取单个事件
// @Summary      Get incident
// @Tags         Incident
// @Produce      json
// @Param        id path string true "Incident ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id} [get]
func (c *IncidentController) GetIncident() {
	incident, err := c.service().GetIncidentByID(c.Ctx.Param("id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener incidente")
		return
	}
	response.Success(c.Ctx, incident)
}

// CreateIncident 上报事件
// @Summary      Report incident
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Param        request body IncidentRequest true "Incident"
// @Success      201  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /incidents [post]
func (c *IncidentController) CreateIncident() {
	var req IncidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	incident := &models.Incident{
		IncidentType:      req.IncidentType,
		Description:       req.Description,
		Location:          req.Location,
		Severity:          req.Severity,
		Status:            req.Status,
		ReportedBy:        req.ReportedBy,
		FraccionamientoID: req.FraccionamientoID,
	}
	if req.ReportedAt != "" {
		reportedAt, err := utils.ParseDate(req.ReportedAt)
		if err != nil {
			respondServiceError(c.Ctx, services.ErrInvalidDate, "")
			return
		}
		incident.ReportedAt = reportedAt
	}

	if err := c.service().CreateIncident(incident); err != nil {
		respondServiceError(c.Ctx, err, "Error al crear incidente")
		return
	}
	response.Created(c.Ctx, "Incidente creado", incident, nil)
}

// UpdateIncident 更新事件，只接受白名单字段
// @Summary      Update incident
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Param        id path string true "Incident ID"
// @Param        request body map[string]interface{} true "Columns to update"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id} [put]
func (c *IncidentController) UpdateIncident() {
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "", nil)
		return
	}

	incident, err := c.service().UpdateIncident(c.Ctx.Param("id"), updates)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al actualizar incidente")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Incidente actualizado", incident, nil)
}

// DeleteIncident 删除事件
// @Summary      Delete incident
// @Tags         Incident
// @Produce      json
// @Param        id path string true "Incident ID"
// @Success      200  {object}  SuccessResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id} [delete]
func (c *IncidentController) DeleteIncident() {
	if err := c.service().DeleteIncident(c.Ctx.Param("id")); err != nil {
		respondServiceError(c.Ctx, err, "Error al eliminar incidente")
		return
	}
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Incidente eliminado", nil, nil)
}

// GetIncidentsByType 按类型统计事件
// @Summary      Incident counts by type
// @Tags         Incident
// @Produce      json
// @Param        fraccionamiento_id query string false "Community ID"
// @Param        start_date query string false "RFC3339 or YYYY-MM-DD"
// @Param        end_date query string false "RFC3339 or YYYY-MM-DD"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /incidents/stats/by-type [get]
func (c *IncidentController) GetIncidentsByType() {
	counts, err := c.service().CountByType(c.filter())
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener estadísticas")
		return
	}
	response.Success(c.Ctx, counts)
}

// GetIncidentStats 获取事件统计
// @Summary      Incident statistics
// @Tags         Incident
// @Produce      json
// @Param        fraccionamiento_id query string false "Community ID"
// @Success      200  {object}  SuccessResponse
// @Router       /incidents/stats [get]
func (c *IncidentController) GetIncidentStats() {
	stats, err := c.service().GetStats(c.Ctx.Query("fraccionamiento_id"))
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener estadísticas")
		return
	}
	response.Success(c.Ctx, stats)
}
