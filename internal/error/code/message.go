package code

// 错误码消息映射（面向前端，使用西班牙语）
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "Operación exitosa",
	ErrUnknown:         "Error desconocido",
	ErrBind:            "Parámetros de solicitud inválidos",
	ErrValidation:      "Error de validación",
	ErrRouteNotFound:   "La página que intentas buscar no existe...",
	ErrNothingToUpdate: "No hay campos para actualizar",

	// 用户/档案相关错误码
	ErrUserNotFound:          "Perfil no encontrado",
	ErrUserAlreadyExist:      "Ya existe un usuario con este email",
	ErrUserPasswordIncorrect: "Contraseña incorrecta",
	ErrLoginUserNotFound:     "Usuario no encontrado",
	ErrInvalidRole:           "Rol inválido",

	// 访客相关错误码
	ErrVisitorNotFound:  "Visitante no encontrado",
	ErrVisitorTypeNoQR:  "Este tipo de visitante no requiere código QR",
	ErrQRInvalid:        "Código QR inválido",
	ErrPassExpired:      "El pase de un solo uso ha expirado",
	ErrPassAlreadyUsed:  "El pase de un solo uso ya fue utilizado",
	ErrQRGenerateFailed: "Error al generar código QR",

	// 注册申请相关错误码
	ErrRegistrationNotFound:      "Registro no encontrado o ya procesado",
	ErrRegistrationExists:        "Ya existe un registro con este email",
	ErrRegistrationEmailTaken:    "Ya existe un usuario con este email",
	ErrRegistrationInvalidStatus: "Estado inválido",

	// 事件相关错误码
	ErrIncidentNotFound:        "Incidente no encontrado",
	ErrIncidentInvalidSeverity: "Severidad inválida",
	ErrIncidentInvalidStatus:   "Estado inválido",
	ErrInvalidDate:             "Formato de fecha inválido",

	// 数据库相关错误码
	ErrDatabase:       "Error de base de datos",
	ErrRecordNotFound: "Registro no encontrado",

	// 内容相关错误码
	ErrBannerNotFound:       "Banner no encontrado",
	ErrNotificationNotFound: "Notificación no encontrada",
	ErrChatMessageInvalid:   "Mensaje inválido",
	ErrHistoryUnavailable:   "Historial no disponible",

	// 迁移相关错误码
	ErrMigrationFailed:  "Error de migración",
	ErrConnectionFailed: "Error de conexión",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrRouteNotFound:   StatusNotFound,
	ErrNothingToUpdate: StatusBadRequest,

	// 用户/档案相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrLoginUserNotFound:     StatusUnauthorized,
	ErrInvalidRole:           StatusBadRequest,

	// 访客相关错误码
	ErrVisitorNotFound:  StatusNotFound,
	ErrVisitorTypeNoQR:  StatusBadRequest,
	ErrQRInvalid:        StatusBadRequest,
	ErrPassExpired:      StatusGone,
	ErrPassAlreadyUsed:  StatusConflict,
	ErrQRGenerateFailed: StatusInternalServerError,

	// 注册申请相关错误码
	ErrRegistrationNotFound:      StatusNotFound,
	ErrRegistrationExists:        StatusBadRequest,
	ErrRegistrationEmailTaken:    StatusBadRequest,
	ErrRegistrationInvalidStatus: StatusBadRequest,

	// 事件相关错误码
	ErrIncidentNotFound:        StatusNotFound,
	ErrIncidentInvalidSeverity: StatusBadRequest,
	ErrIncidentInvalidStatus:   StatusBadRequest,
	ErrInvalidDate:             StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// 内容相关错误码
	ErrBannerNotFound:       StatusNotFound,
	ErrNotificationNotFound: StatusNotFound,
	ErrChatMessageInvalid:   StatusBadRequest,
	ErrHistoryUnavailable:   StatusServiceUnavailable,

	// 迁移相关错误码
	ErrMigrationFailed:  StatusInternalServerError,
	ErrConnectionFailed: StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return codeStatusMap[ErrUnknown]
}
