package services

import "errors"

// 业务错误，控制器通过 errors.Is 映射到错误码
var (
	ErrProfileNotFound      = errors.New("Perfil no encontrado")
	ErrLoginUserNotFound    = errors.New("Usuario no encontrado")
	ErrWrongPassword        = errors.New("Contraseña incorrecta")
	ErrInvalidRole          = errors.New("Rol inválido")
	ErrNothingToUpdate      = errors.New("No hay campos para actualizar")
	ErrVisitorNotFound      = errors.New("Visitante no encontrado")
	ErrVisitorTypeNoQR      = errors.New("Este tipo de visitante no requiere código QR")
	ErrInvalidQRData        = errors.New("Datos de QR inválidos")
	ErrUnsupportedQRType    = errors.New("Tipo de QR no soportado")
	ErrPassExpired          = errors.New("El pase de un solo uso ha expirado")
	ErrPassAlreadyUsed      = errors.New("El pase de un solo uso ya fue utilizado")
	ErrRegistrationNotFound = errors.New("Registro no encontrado o ya procesado")
	ErrRegistrationExists   = errors.New("Ya existe un registro con este email")
	ErrEmailTaken           = errors.New("Ya existe un usuario con este email")
	ErrInvalidStatus        = errors.New("Estado inválido")
	ErrInvalidSeverity      = errors.New("Severidad inválida")
	ErrIncidentNotFound     = errors.New("Incidente no encontrado")
	ErrInvalidDate          = errors.New("Formato de fecha inválido")
	ErrBannerNotFound       = errors.New("Banner no encontrado")
	ErrNotificationNotFound = errors.New("Notificación no encontrada")
	ErrMissingField         = errors.New("Faltan campos requeridos")
)
