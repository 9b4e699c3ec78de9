// Package budget 提供 Token 估算与上下文窗口预算规划能力。
//
// 本包包含两部分：
//
//   - TokenCounter：Token 计数。EstimatedCounter 使用固定字符比率
//     （4 字符/Token）估算，TiktokenCounter 使用模型编码表精确计数。
//   - Planner：将命名预算档位（按目标模型）解析为
//     {total, system, context, response, reserved} 分配方案，
//     并支持按自定义总量等比缩放。
//
// # 基本用法
//
//	planner := budget.NewPlanner()
//	b := planner.Resolve("gpt-4o", 0)
//	available := budget.Available(b) // 可用于检索上下文的 Token 数
//
// 打包前需扣除格式化开销：
//
//	overhead := budget.EstimateOverhead(chunkCount, true)
//	ceiling := maxTokens - overhead
package budget
