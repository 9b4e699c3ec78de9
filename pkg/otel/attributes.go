package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
// 遵循 OpenTelemetry 语义约定
const (
	// 请求相关属性
	AttrRequestID   = "request.id"
	AttrUserID      = "request.user_id"
	AttrQueryLength = "request.query_length"

	// 检索相关属性
	AttrHybrid     = "search.hybrid"
	AttrCandidates = "search.candidates"
	AttrCategories = "search.categories"

	// 组装相关属性
	AttrChunksIncluded = "assembly.chunks_included"
	AttrTokensUsed     = "assembly.tokens_used"
	AttrTruncated      = "assembly.truncated"
	AttrBudgetProfile  = "assembly.budget_profile"

	// Error 相关属性
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// RequestID 创建请求 ID 属性
func RequestID(id string) attribute.KeyValue {
	return attribute.String(AttrRequestID, id)
}

// UserID 创建用户 ID 属性
func UserID(id string) attribute.KeyValue {
	return attribute.String(AttrUserID, id)
}

// QueryLength 创建查询长度属性
func QueryLength(n int) attribute.KeyValue {
	return attribute.Int(AttrQueryLength, n)
}

// Hybrid 创建混合检索标记属性
func Hybrid(enabled bool) attribute.KeyValue {
	return attribute.Bool(AttrHybrid, enabled)
}

// Candidates 创建候选数量属性
func Candidates(n int) attribute.KeyValue {
	return attribute.Int(AttrCandidates, n)
}

// ChunksIncluded 创建入选块数属性
func ChunksIncluded(n int) attribute.KeyValue {
	return attribute.Int(AttrChunksIncluded, n)
}

// TokensUsed 创建已用 Token 数属性
func TokensUsed(n int) attribute.KeyValue {
	return attribute.Int(AttrTokensUsed, n)
}

// Truncated 创建截断标记属性
func Truncated(truncated bool) attribute.KeyValue {
	return attribute.Bool(AttrTruncated, truncated)
}

// BudgetProfile 创建预算档位属性
func BudgetProfile(profile string) attribute.KeyValue {
	return attribute.String(AttrBudgetProfile, profile)
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
	}
}
