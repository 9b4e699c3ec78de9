// Package errors 定义上下文组装子系统的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrContextCanceled 上下文被取消
	ErrContextCanceled = errors.New("context canceled")
)

// 检索相关错误
var (
	// ErrProviderRequired 未提供检索提供者
	ErrProviderRequired = errors.New("search provider is required")
	// ErrProviderUnavailable 检索提供者不可用
	ErrProviderUnavailable = errors.New("search provider unavailable")
	// ErrSearchFailed 检索失败
	ErrSearchFailed = errors.New("search failed")
	// ErrRateLimited 请求被限速
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout 请求超时
	ErrTimeout = errors.New("request timeout")
)

// 预算相关错误
var (
	// ErrProfileNotFound 预算档位未找到
	ErrProfileNotFound = errors.New("budget profile not found")
	// ErrBudgetExhausted 上下文预算不足以容纳任何块
	ErrBudgetExhausted = errors.New("context budget exhausted")
)

// 存储相关错误
var (
	// ErrDocumentNotFound 文档未找到
	ErrDocumentNotFound = errors.New("document not found")
	// ErrStoreFailed 存储操作失败
	ErrStoreFailed = errors.New("store operation failed")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsRetryable 判断错误是否可重试
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrProviderUnavailable)
}

// IsFatal 判断错误是否为致命错误（不可恢复）
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrProviderRequired)
}
