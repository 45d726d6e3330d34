package response

import (
	"github.com/gin-gonic/gin"

	"aicp-http-service/internal/error/code"
)

// envelope 组装统一响应体，success 与 exito 同时返回，前端两种写法都在使用
// payload 中的键与基础字段并列输出
func envelope(ok bool, errorCode int, message string, data interface{}, payload gin.H) gin.H {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = ok
	body["exito"] = ok
	body["code"] = errorCode
	body["mensaje"] = message
	if data != nil {
		body["data"] = data
	}
	return body
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(code.StatusOK, envelope(true, code.ErrSuccess, code.GetMessage(code.ErrSuccess), data, nil))
}

// SuccessWithPayload 成功响应（自定义状态码、消息以及附加字段）
func SuccessWithPayload(c *gin.Context, status int, message string, data interface{}, payload gin.H) {
	if message == "" {
		message = code.GetMessage(code.ErrSuccess)
	}
	c.JSON(status, envelope(true, code.ErrSuccess, message, data, payload))
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}, payload gin.H) {
	SuccessWithPayload(c, code.StatusCreated, message, data, payload)
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), envelope(false, errorCode, code.GetMessage(errorCode), data, nil))
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	if message == "" {
		message = code.GetMessage(errorCode)
	}
	c.JSON(code.GetStatus(errorCode), envelope(false, errorCode, message, data, nil))
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}
