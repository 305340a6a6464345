package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/cloudwego/eino/components/embedding"
)

// MockEmbedder 确定性的本地嵌入器，用于测试和离线演示
// 向量由文本逐词哈希生成：相同文本得到相同向量，
// 词汇重叠越多的文本距离越近，足以驱动最近邻检索的单元测试。
type MockEmbedder struct {
	Dimensions int
}

// NewMockEmbedder 创建指定维度的Mock嵌入器
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 64
	}
	return &MockEmbedder{Dimensions: dimensions}
}

// GetDimensions 返回嵌入向量的维度
func (m *MockEmbedder) GetDimensions() int {
	return m.Dimensions
}

// EmbedStrings 为每条文本生成确定性向量
func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = m.embedOne(text)
	}
	return vectors, nil
}

// embedOne 逐字符滑动哈希填充向量桶并做L2归一化
func (m *MockEmbedder) embedOne(text string) []float64 {
	vec := make([]float64, m.Dimensions)

	word := make([]rune, 0, 16)
	flush := func() {
		if len(word) == 0 {
			return
		}
		h := fnv.New32a()
		h.Write([]byte(string(word)))
		bucket := int(h.Sum32()) % m.Dimensions
		if bucket < 0 {
			bucket += m.Dimensions
		}
		vec[bucket]++
		word = word[:0]
	}

	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' || r == ',' || r == '.' {
			flush()
			continue
		}
		word = append(word, r)
	}
	flush()

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}
