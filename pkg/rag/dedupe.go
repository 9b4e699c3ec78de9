package rag

import (
	"strings"
)

// minDedupeWordLength 参与相似度比较的最短词长。
// 过短的词（the、is、of 等）对区分内容没有帮助。
const minDedupeWordLength = 3

// Deduplicator 移除与已保留块近似重复的块。
//
// 相似度度量为词集 Jaccard 相似度：小写化后长度大于 2 的词的
// |交集| / |并集|。两个空集相似度为 1（退化的相同空文本情形），
// 一空一非空相似度为 0。
type Deduplicator struct{}

// NewDeduplicator 创建 Deduplicator。
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate 移除与任一已接受块相似度 >= threshold 的块。
//
// 输入必须已按分数降序排列，保证近似重复组中保留的是最高分的块。
// 每个候选块要与所有已接受块两两比较，复杂度 O(n^2)：在类别/分数
// 过滤后 n 只有几十，可以接受。若候选量增长到数百，需要改用
// 局部敏感哈希之类的方案重构。
func (d *Deduplicator) Deduplicate(chunks []Chunk, threshold float64) []Chunk {
	result := make([]Chunk, 0, len(chunks))
	accepted := make([]map[string]struct{}, 0, len(chunks))

	for _, chunk := range chunks {
		words := wordSet(chunk.Text)

		duplicate := false
		for _, kept := range accepted {
			if jaccard(words, kept) >= threshold {
				duplicate = true
				break
			}
		}

		if duplicate {
			continue
		}

		result = append(result, chunk)
		accepted = append(accepted, words)
	}

	return result
}

// wordSet 提取文本中的词集：小写化，只保留长度大于 2 的词。
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range tokenize(text) {
		if len(word) >= minDedupeWordLength {
			set[word] = struct{}{}
		}
	}
	return set
}

// jaccard 计算两个词集的 Jaccard 相似度。
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// tokenize 将文本分割为小写词元用于比较。
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if isTokenChar(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isTokenChar 返回该字符是否应该是词元的一部分。
func isTokenChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r >= 0x4E00 && r <= 0x9FFF // 中文字符
}
