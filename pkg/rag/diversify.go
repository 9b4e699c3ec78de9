package rag

// Diversifier 保证最终选择覆盖足够多的来源文档。
type Diversifier struct{}

// NewDiversifier 创建 Diversifier。
func NewDiversifier() *Diversifier {
	return &Diversifier{}
}

// Diversify 按输入（分数降序）顺序累积块，直到两个条件同时满足：
// 至少覆盖 minDocuments 个不同文档，且已累积至少 minDocuments*2 个块。
// 2 倍下限是软地板：避免刚凑齐文档多样性就截断，而分数相近的
// 好块还排在后面。
//
// 若输入覆盖的文档总数不足 minDocuments，多样性目标不可达，
// 原样返回全部输入（这不是错误）。
func (d *Diversifier) Diversify(chunks []Chunk, minDocuments int) []Chunk {
	if minDocuments <= 0 {
		result := make([]Chunk, len(chunks))
		copy(result, chunks)
		return result
	}

	distinct := make(map[int64]struct{}, len(chunks))
	for _, chunk := range chunks {
		distinct[chunk.DocumentID] = struct{}{}
	}
	if len(distinct) < minDocuments {
		result := make([]Chunk, len(chunks))
		copy(result, chunks)
		return result
	}

	seen := make(map[int64]struct{}, minDocuments)
	result := make([]Chunk, 0, len(chunks))

	for _, chunk := range chunks {
		result = append(result, chunk)
		seen[chunk.DocumentID] = struct{}{}

		if len(seen) >= minDocuments && len(result) >= minDocuments*2 {
			break
		}
	}

	return result
}
