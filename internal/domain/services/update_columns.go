package services

// FilterColumns 按白名单过滤动态更新字段，id 和未知字段被忽略
func FilterColumns(updates map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	columns := make(map[string]interface{}, len(updates))
	for key, value := range updates {
		if key == "id" || !allowed[key] {
			continue
		}
		columns[key] = value
	}
	return columns
}
