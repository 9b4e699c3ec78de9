package budget

// Budget 表示某一模型档位的上下文窗口分配方案。
//
// 各字段均为非负整数。system + response + reserved <= total 是期望
// 但不强制的约束：配置错误时 Available 可能为负，调用方必须将负值
// 钳制为 0（即"没有任何块放得下"）。
type Budget struct {
	// Total 上下文窗口总量
	Total int `json:"total" koanf:"total"`
	// System 系统提示预留
	System int `json:"system" koanf:"system"`
	// Context 检索上下文的名义配额
	Context int `json:"context" koanf:"context"`
	// Response 回复生成预留
	Response int `json:"response" koanf:"response"`
	// Reserved 其他固定开销预留
	Reserved int `json:"reserved" koanf:"reserved"`
}

// 格式化开销常量。打包前必须先扣除这些开销，
// 保证最终上下文不会超出名义预算上限。
const (
	// SeparatorCost 块与块之间分隔符的 Token 开销
	SeparatorCost = 5
	// HeaderCost 每个块标题前缀（[标题 (类别)]）的 Token 开销
	HeaderCost = 10
	// SourcesOverhead 附带来源列表时的固定 Token 开销
	SourcesOverhead = 50
)

// DefaultProfile 是未知档位回退使用的默认档位名。
const DefaultProfile = "gpt-4o-mini"

// defaultProfiles 按目标模型定义的默认预算表。
// 各档位满足 system + context + response + reserved == total。
func defaultProfiles() map[string]Budget {
	return map[string]Budget{
		"gpt-4o": {
			Total:    128000,
			System:   2500,
			Context:  100000,
			Response: 16000,
			Reserved: 9500,
		},
		"gpt-4o-mini": {
			Total:    128000,
			System:   2500,
			Context:  100000,
			Response: 16000,
			Reserved: 9500,
		},
		"gpt-4": {
			Total:    8192,
			System:   1500,
			Context:  4500,
			Response: 2000,
			Reserved: 192,
		},
		"gpt-3.5-turbo": {
			Total:    16385,
			System:   1500,
			Context:  10000,
			Response: 4000,
			Reserved: 885,
		},
		"claude-3-5-sonnet": {
			Total:    200000,
			System:   2500,
			Context:  170000,
			Response: 16000,
			Reserved: 11500,
		},
	}
}

// Planner 将命名预算档位解析为具体的 Token 分配方案。
type Planner struct {
	profiles       map[string]Budget
	defaultProfile string
}

// PlannerOption 配置 Planner。
type PlannerOption func(*Planner)

// WithProfile 注册或覆盖一个预算档位。
func WithProfile(name string, b Budget) PlannerOption {
	return func(p *Planner) {
		p.profiles[name] = b
	}
}

// WithDefaultProfile 设置未知档位回退使用的默认档位。
func WithDefaultProfile(name string) PlannerOption {
	return func(p *Planner) {
		p.defaultProfile = name
	}
}

// NewPlanner 使用内置预算表创建 Planner。
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{
		profiles:       defaultProfiles(),
		defaultProfile: DefaultProfile,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Resolve 将档位名解析为预算方案。
//
// 未知档位回退到默认档位。customTotal > 0 时按原档位的比例
// 等比缩放各项分配：newValue = floor(oldValue * customTotal / oldTotal)。
func (p *Planner) Resolve(profile string, customTotal int) Budget {
	b, ok := p.profiles[profile]
	if !ok {
		b = p.profiles[p.defaultProfile]
	}

	if customTotal > 0 && b.Total > 0 {
		b = Budget{
			Total:    customTotal,
			System:   b.System * customTotal / b.Total,
			Context:  b.Context * customTotal / b.Total,
			Response: b.Response * customTotal / b.Total,
			Reserved: b.Reserved * customTotal / b.Total,
		}
	}

	return b
}

// Profiles 返回所有已注册的档位名。
func (p *Planner) Profiles() []string {
	names := make([]string, 0, len(p.profiles))
	for name := range p.profiles {
		names = append(names, name)
	}
	return names
}

// Available 返回预算中可用于检索上下文的 Token 数。
//
// 计算方式为 total - system - response - reserved。配置错误时
// 结果可能为负：调用方在用作打包上限前必须钳制为 0。
func Available(b Budget) int {
	return b.Total - b.System - b.Response - b.Reserved
}

// EstimateOverhead 估算 N 个块的格式化开销。
//
// N 个块之间有 N-1 个分隔符，每个块有一个标题前缀；
// 附带来源列表时加固定开销。打包前从可用预算中扣除。
func EstimateOverhead(chunkCount int, includeSources bool) int {
	overhead := 0
	if chunkCount > 0 {
		overhead = (chunkCount-1)*SeparatorCost + chunkCount*HeaderCost
	}
	if includeSources {
		overhead += SourcesOverhead
	}
	return overhead
}
