package scoring

import (
	"sort"
	"time"
)

// Dated 带日期的记录
//
// 日期必须是零填充的 YYYY-MM-DD 字符串：区间筛选与周分组都依赖
// 字典序比较，该格式下字典序即时间序。
type Dated interface {
	RecordDate() string
}

const dateLayout = "2006-01-02"

// FilterByRange 筛选日期落在 [start, end] 闭区间内的记录
func FilterByRange[T Dated](records []T, start, end string) []T {
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		d := r.RecordDate()
		if d >= start && d <= end {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GroupByWeek 按周分桶，键为该周周一的 YYYY-MM-DD
//
// 周日视为上一周的第 7 天。日期无法解析的记录被丢弃。
// 返回的 map 无序，调用方需对键做字典序排序后再遍历。
func GroupByWeek[T Dated](records []T) map[string][]T {
	buckets := make(map[string][]T)
	for _, r := range records {
		monday, ok := WeekStart(r.RecordDate())
		if !ok {
			continue
		}
		buckets[monday] = append(buckets[monday], r)
	}
	return buckets
}

// WeekStart 计算日期所属周的周一
func WeekStart(date string) (string, bool) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	// time.Weekday 周日为 0，回退 (weekday+6)%7 天即最近的周一
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format(dateLayout), true
}

// SortedWeekKeys 返回字典序（即时间序）排列的周键
func SortedWeekKeys[T any](buckets map[string][]T) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PeriodDays 计算 [start, end] 的自然日天数（含两端）
//
// 日期无法解析或 end 早于 start 时返回 0。
func PeriodDays(start, end string) int {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}
