package utils

import (
	"fmt"
	"time"
)

// 查询参数中接受的日期格式
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate 解析 RFC3339 或 YYYY-MM-DD 格式的日期
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// EndOfDay 对只有日期部分的值返回当天结束时间，其他值原样返回
func EndOfDay(value string, t time.Time) time.Time {
	if len(value) == len("2006-01-02") {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
