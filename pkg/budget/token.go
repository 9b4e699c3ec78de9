package budget

import (
	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter 定义 Token 计数接口。
type TokenCounter interface {
	// Count 返回给定文本的 Token 数量。
	Count(text string) int
}

// DefaultCharsPerToken 是每个 Token 的平均字符数。
// 4 是英文文本的合理估计。
const DefaultCharsPerToken = 4

// EstimatedCounter 使用固定字符比率估算 Token 数量。
//
// 估算公式为 ceil(len(text) / CharsPerToken)。这只是近似值，
// 不是真正的分词器：适用于预算规划，不适用于计费级别的精确计数。
type EstimatedCounter struct {
	// CharsPerToken 是每个 Token 的平均字符数，默认为 4。
	CharsPerToken int
}

// NewEstimatedCounter 创建新的 EstimatedCounter。
func NewEstimatedCounter() *EstimatedCounter {
	return &EstimatedCounter{
		CharsPerToken: DefaultCharsPerToken,
	}
}

// Count 返回估算的 Token 数量。
// 空文本返回 0。
func (c *EstimatedCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	k := c.CharsPerToken
	if k <= 0 {
		k = DefaultCharsPerToken
	}
	return (len(text) + k - 1) / k
}

// TiktokenCounter 使用 tiktoken 实现精确的 Token 计数。
//
// 相比 EstimatedCounter 更准确，但依赖模型编码表。
// 预算规划默认仍使用 EstimatedCounter 以保证确定性。
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

// TiktokenOption 配置 TiktokenCounter。
type TiktokenOption func(*TiktokenCounter)

// WithModel 设置 Token 编码使用的模型。
// 支持的模型：gpt-4、gpt-4o、gpt-3.5-turbo 等。
func WithModel(model string) TiktokenOption {
	return func(c *TiktokenCounter) {
		c.model = model
	}
}

// NewTiktokenCounter 创建新的 TiktokenCounter。
// 默认使用 cl100k_base 编码（GPT-4、GPT-4o 等使用）。
func NewTiktokenCounter(opts ...TiktokenOption) (*TiktokenCounter, error) {
	c := &TiktokenCounter{
		model: "gpt-4o",
	}

	for _, opt := range opts {
		opt(c)
	}

	encoding, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		// 降级到 cl100k_base 编码
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}

	c.encoding = encoding
	return c, nil
}

// Count 返回给定文本的 Token 数量。
func (c *TiktokenCounter) Count(text string) int {
	if c.encoding == nil {
		return NewEstimatedCounter().Count(text)
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// DefaultTokenCounter 返回预算规划使用的默认计数器。
// 使用字符比率估算，保证相同输入的结果确定。
func DefaultTokenCounter() TokenCounter {
	return NewEstimatedCounter()
}

// 编译时接口检查
var _ TokenCounter = (*EstimatedCounter)(nil)
var _ TokenCounter = (*TiktokenCounter)(nil)
