package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NormalizeColumnName 规范化列名，去除空格和特殊字符
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	re := regexp.MustCompile(`\s+`)
	name = re.ReplaceAllString(name, "")
	return name
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// dateLayouts 支持的日期写法
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"01-02-06",
	"2006-01-02 15:04:05",
}

var chineseDateRe = regexp.MustCompile(`(\d{4})年0?(\d{1,2})月0?(\d{1,2})日?`)

// NormalizeDate 把单元格内容转换为零填充的 YYYY-MM-DD
//
// 支持常见日期格式、中文日期和 Excel 日期序列号。
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	if m := chineseDateRe.FindStringSubmatch(value); len(m) == 4 {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
	}

	// Excel 日期序列号（1900 日期系统，纪元 1899-12-30）
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return epoch.AddDate(0, 0, int(serial)).Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("unrecognized date: %q", value)
}

// parseFloat 安全转换为浮点数
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // 移除千分位
	s = strings.ReplaceAll(s, "％", "%")
	s = strings.ReplaceAll(s, "%", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// parseInt 安全转换为整数
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	i, _ := strconv.Atoi(s)
	return i
}

// cellAt 取行内指定列，越界返回空串
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
