package dto

import (
	"bytes"
	"fmt"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate 解析 RFC3339 或纯日期字符串，结果统一为 UTC
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %q", s)
}

// Date 请求体中的日期字段，兼容 "2024-03-01" 与 RFC3339 两种写法
type Date struct {
	time.Time
}

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// OptionalDate 更新请求中可清空的日期
// 字段缺省时 Set 为 false；null 或 "" 表示清空，其余按 Date 解析
type OptionalDate struct {
	Set bool
	Date
}

// UnmarshalJSON 非指针字段遇到 null 也会调用，以此区分“缺省”与“清空”
func (d *OptionalDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	return d.Date.UnmarshalJSON(b)
}

// Ptr 转为 *time.Time，空值返回 nil
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
