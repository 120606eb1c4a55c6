package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
)

// 目标 / 任务 / 个人待办共用的 completed 取值
const statusCompleted = "completed"

// enteringCompleted 本次更新是否由非 completed 进入 completed
// 只处理正向迁移，离开 completed 时不回退派生字段
func enteringCompleted(prev string, next *string) bool {
	return next != nil && *next == statusCompleted && prev != statusCompleted
}

// nowUTC 统一的时间源
var nowUTC = func() time.Time { return time.Now().UTC() }

// orDefault 空字符串取默认值
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// parseDateFilter 解析列表查询中的日期参数；空串返回 nil
func parseDateFilter(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// notFound 将 gorm.ErrRecordNotFound 翻译为业务错误，其余错误原样返回
func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
