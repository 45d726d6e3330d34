package controllers

import (
	"errors"
	"strings"

	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Login()
	Logout()
	GetProfile()
	ForgotPassword()
}

// AuthController 处理身份验证请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" example:"admin@aicp.mx"`
	Password string `json:"password" example:"admin123"`
}

// ForgotPasswordRequest 表示找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"residente@aicp.mx"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "getProfile":
			controller.GetProfile()
		case "forgotPassword":
			controller.ForgotPassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Método inválido", nil)
		}
	}
}

// Login 处理用户登录
// @Summary      User Login
// @Description  Compare the password against the profile with that email and return the profile plus an informational token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request parameters"
// @Success      200  {object}  SuccessResponse  "user, profile and token"
// @Failure      400  {object}  ErrorResponse  "Missing email or password"
// @Failure      401  {object}  ErrorResponse  "Unknown email or wrong password"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.ParamError(c.Ctx, "Email y contraseña son requeridos")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	result, err := authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al iniciar sesión")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Inicio de sesión exitoso", result, gin.H{
		"user":    result.User,
		"profile": result.Profile,
		"token":   result.Token,
	})
}

// Logout 退出登录，服务端没有会话需要清理
// @Summary      User Logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /auth/logout [post]
func (c *AuthController) Logout() {
	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Sesión cerrada", nil, nil)
}

// GetProfile 获取当前用户档案
// @Summary      Get profile by user id
// @Tags         Auth
// @Produce      json
// @Param        user_id query string true "Profile ID"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/profile [get]
func (c *AuthController) GetProfile() {
	userID := strings.TrimSpace(c.Ctx.Query("user_id"))
	if userID == "" {
		response.ParamError(c.Ctx, "user_id es requerido")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	profile, err := authService.GetProfile(userID)
	if err != nil {
		respondServiceError(c.Ctx, err, "Error al obtener perfil")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "", profile, gin.H{"profile": profile})
}

// ForgotPassword 找回密码，只校验邮箱是否存在
// @Summary      Forgot password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Email"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/forgot-password [post]
func (c *AuthController) ForgotPassword() {
	var req ForgotPasswordRequest
	if !bindOptionalJSON(c.Ctx, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		response.ParamError(c.Ctx, "Email es requerido")
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	if err := authService.RequestPasswordReset(req.Email); err != nil {
		if errors.Is(err, services.ErrLoginUserNotFound) {
			response.ParamError(c.Ctx, err.Error())
			return
		}
		respondServiceError(c.Ctx, err, "Error al procesar la solicitud")
		return
	}

	response.SuccessWithPayload(c.Ctx, code.StatusOK, "Email de recuperación enviado", nil, nil)
}
