package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// 上下文组装指标
	MetricAssemblyTotal     = "ragcontext.assembly.total"       // 计数器: 组装次数
	MetricAssemblyDuration  = "ragcontext.assembly.duration_ms" // 直方图: 组装耗时(ms)
	MetricAssemblyTokens    = "ragcontext.assembly.tokens"      // 直方图: 组装后 Token 数
	MetricAssemblyTruncated = "ragcontext.assembly.truncated"   // 计数器: 发生截断的组装次数

	// 检索指标
	MetricSearchTotal    = "ragcontext.search.total"       // 计数器: 检索次数
	MetricSearchDuration = "ragcontext.search.duration_ms" // 直方图: 检索耗时(ms)
	MetricSearchFailures = "ragcontext.search.failures"    // 计数器: 检索失败次数
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricAssemblyTotal, "Number of context assemblies", UnitCount, "counter"},
	{MetricAssemblyDuration, "Duration of context assemblies", UnitMilliseconds, "histogram"},
	{MetricAssemblyTokens, "Tokens used per assembled context", UnitCount, "histogram"},
	{MetricAssemblyTruncated, "Number of truncated assemblies", UnitCount, "counter"},

	{MetricSearchTotal, "Number of searches", UnitCount, "counter"},
	{MetricSearchDuration, "Duration of searches", UnitMilliseconds, "histogram"},
	{MetricSearchFailures, "Number of failed searches", UnitCount, "counter"},
}
