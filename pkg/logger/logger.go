package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 全局日志记录器，未初始化前为空操作记录器
var (
	zapLogger = zap.NewNop()
	sugar     = zapLogger.Sugar()
)

// SetupLogger 初始化日志配置：同时输出到控制台和 logs/ 下按日期命名的文件
// level 取自配置中的 LOG_LEVEL，无法识别时使用 info
func SetupLogger(level string) error {
	return setupLogger("logs", level)
}

func setupLogger(logDir, level string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}

	atomicLevel := zap.NewAtomicLevelAt(parseLevel(level))

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), atomicLevel),
		zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), atomicLevel),
	)

	SetLogger(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

// SetLogger 替换全局日志记录器（测试中可传入 zaptest/观察者记录器）
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	zapLogger = l
	sugar = l.Sugar()
}

// L 返回底层 zap 记录器，供 gin 访问日志等中间件使用
func L() *zap.Logger {
	return zapLogger.WithOptions(zap.AddCallerSkip(-1))
}

// Sync 刷新缓冲的日志
func Sync() {
	_ = zapLogger.Sync()
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
