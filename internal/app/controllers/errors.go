package controllers

import (
	"errors"
	"io"
	"strconv"

	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"
	Logger "aicp-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Exito   bool   `json:"exito" example:"false"`
	Code    int    `json:"code" example:"102000"`
	Message string `json:"mensaje" example:"Visitante no encontrado"`
}

// SuccessResponse 表示成功响应
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Exito   bool        `json:"exito" example:"true"`
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"mensaje" example:"Operación exitosa"`
	Data    interface{} `json:"data"`
}

// 业务错误到错误码的映射
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrProfileNotFound, code.ErrUserNotFound},
	{services.ErrLoginUserNotFound, code.ErrLoginUserNotFound},
	{services.ErrWrongPassword, code.ErrUserPasswordIncorrect},
	{services.ErrInvalidRole, code.ErrInvalidRole},
	{services.ErrNothingToUpdate, code.ErrNothingToUpdate},
	{services.ErrVisitorNotFound, code.ErrVisitorNotFound},
	{services.ErrVisitorTypeNoQR, code.ErrVisitorTypeNoQR},
	{services.ErrInvalidQRData, code.ErrQRInvalid},
	{services.ErrUnsupportedQRType, code.ErrQRInvalid},
	{services.ErrPassExpired, code.ErrPassExpired},
	{services.ErrPassAlreadyUsed, code.ErrPassAlreadyUsed},
	{services.ErrRegistrationNotFound, code.ErrRegistrationNotFound},
	{services.ErrRegistrationExists, code.ErrRegistrationExists},
	{services.ErrEmailTaken, code.ErrRegistrationEmailTaken},
	{services.ErrInvalidStatus, code.ErrRegistrationInvalidStatus},
	{services.ErrInvalidSeverity, code.ErrIncidentInvalidSeverity},
	{services.ErrIncidentNotFound, code.ErrIncidentNotFound},
	{services.ErrInvalidDate, code.ErrInvalidDate},
	{services.ErrBannerNotFound, code.ErrBannerNotFound},
	{services.ErrNotificationNotFound, code.ErrNotificationNotFound},
	{services.ErrMissingField, code.ErrValidation},
}

// respondServiceError 已知业务错误按错误码返回，其余记录日志后返回数据库错误
func respondServiceError(ctx *gin.Context, err error, fallback string) {
	for _, mapping := range serviceErrorCodes {
		if errors.Is(err, mapping.err) {
			response.FailWithMessage(ctx, mapping.code, mapping.err.Error(), nil)
			return
		}
	}
	Logger.Error("%s: %v", fallback, err)
	response.FailWithMessage(ctx, code.ErrDatabase, fallback, nil)
}

// parseID 解析路径中的自增ID
func parseID(ctx *gin.Context, message string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(ctx, message)
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON 请求体可以为空，格式错误时返回绑定错误
func bindOptionalJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.FailWithMessage(ctx, code.ErrBind, "", nil)
		return false
	}
	return true
}
