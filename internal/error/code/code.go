package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源状态冲突.
	StatusConflict = 409
	// StatusGone - 410: 资源已失效.
	StatusGone = 410
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: 服务不可用.
	StatusServiceUnavailable = 503
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrRouteNotFound - 404: 路由不存在.
	ErrRouteNotFound
	// ErrNothingToUpdate - 400: 没有可更新的字段.
	ErrNothingToUpdate
)

// 用户/档案相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrLoginUserNotFound - 401: 登录时用户不存在.
	ErrLoginUserNotFound
	// ErrInvalidRole - 400: 角色无效.
	ErrInvalidRole
)

// 访客相关错误码 (102xxx).
const (
	// ErrVisitorNotFound - 404: 访客不存在.
	ErrVisitorNotFound int = iota + 102000
	// ErrVisitorTypeNoQR - 400: 该访客类型不支持二维码.
	ErrVisitorTypeNoQR
	// ErrQRInvalid - 400: 二维码数据无效.
	ErrQRInvalid
	// ErrPassExpired - 410: 一次性通行证已过期.
	ErrPassExpired
	// ErrPassAlreadyUsed - 409: 一次性通行证已使用.
	ErrPassAlreadyUsed
	// ErrQRGenerateFailed - 500: 二维码生成失败.
	ErrQRGenerateFailed
)

// 注册申请相关错误码 (103xxx).
const (
	// ErrRegistrationNotFound - 404: 注册申请不存在或已处理.
	ErrRegistrationNotFound int = iota + 103000
	// ErrRegistrationExists - 400: 该邮箱已有注册申请.
	ErrRegistrationExists
	// ErrRegistrationEmailTaken - 400: 该邮箱已有账号.
	ErrRegistrationEmailTaken
	// ErrRegistrationInvalidStatus - 400: 注册状态无效.
	ErrRegistrationInvalidStatus
)

// 事件相关错误码 (104xxx).
const (
	// ErrIncidentNotFound - 404: 事件不存在.
	ErrIncidentNotFound int = iota + 104000
	// ErrIncidentInvalidSeverity - 400: 严重程度无效.
	ErrIncidentInvalidSeverity
	// ErrIncidentInvalidStatus - 400: 事件状态无效.
	ErrIncidentInvalidStatus
	// ErrInvalidDate - 400: 日期格式无效.
	ErrInvalidDate
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// 内容相关错误码：横幅、通知、聊天 (106xxx).
const (
	// ErrBannerNotFound - 404: 横幅不存在.
	ErrBannerNotFound int = iota + 106000
	// ErrNotificationNotFound - 404: 通知不存在.
	ErrNotificationNotFound
	// ErrChatMessageInvalid - 400: 聊天消息无效.
	ErrChatMessageInvalid
	// ErrHistoryUnavailable - 503: 访问历史后端不可用.
	ErrHistoryUnavailable
)

// 迁移相关错误码 (109xxx).
const (
	// ErrMigrationFailed - 500: 迁移失败.
	ErrMigrationFailed int = iota + 109000
	// ErrConnectionFailed - 500: 连接失败.
	ErrConnectionFailed
)
