package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── ICS 假日导入解析器 ──────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 假日日历解析为全天日期区间。
//
// 设计决策：
//   - 假日源（政府/市政日历）以全天事件为主，仅取日期部分
//   - 全天事件的 DTEND 为开区间（次日），落库时回退一天
//   - 无 DTEND 的事件视为单日
//   - 带时刻的事件同样按其起止日期处理
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// parsedHoliday ICS 解析中间结构
type parsedHoliday struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time // 闭区间
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseHolidayICS 解析 ICS 内容并转为假日日期区间列表
func ParseHolidayICS(reader io.Reader) ([]parsedHoliday, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var holidays []parsedHoliday
	for _, evt := range cal.Events() {
		h, ok := parseHolidayVEvent(evt)
		if !ok {
			continue
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

// parseHolidayVEvent 解析单个 VEVENT 组件为日期区间
func parseHolidayVEvent(evt *ics.VEvent) (parsedHoliday, bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return parsedHoliday{}, false
	}
	title := strings.TrimSpace(summary.Value)

	start, _, err := parseICSDate(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return parsedHoliday{}, false
	}

	end, endAllDay, err := parseICSDate(evt, ics.ComponentPropertyDtEnd)
	switch {
	case err != nil:
		// 无 DTEND → 单日
		end = start
	case endAllDay:
		// 全天事件 DTEND 为开区间
		end = end.AddDate(0, 0, -1)
	}

	if end.Before(start) {
		end = start
	}

	return parsedHoliday{Title: title, StartDate: start, EndDate: end}, true
}

// parseICSDate 从 VEVENT 中解析日期属性，仅保留日期部分。
// allDay 表示该属性为纯日期（VALUE=DATE）格式。
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty) (t time.Time, allDay bool, err error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	if d, perr := time.Parse("20060102", val); perr == nil {
		return d, true, nil
	}

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
	}
	for _, f := range formats {
		if dt, perr := time.Parse(f, val); perr == nil {
			return time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("无法解析日期: %s", val)
}
