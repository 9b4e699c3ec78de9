// Package store 提供上下文组装所需的持久化块存储。
//
// SQLite 存储按用户保存文档的分块内容，
// 同时充当混合检索的关键词通道。
package store

import (
	"context"
	"errors"

	"github.com/brandquill/ragcontext/pkg/rag"
)

// 存储相关错误
var (
	// ErrNotFound 记录未找到
	ErrNotFound = errors.New("record not found")
	// ErrInvalidDocument 文档无效
	ErrInvalidDocument = errors.New("invalid document")
)

// StoredDocument 已入库的文档
type StoredDocument struct {
	// ID 文档 ID
	ID int64 `json:"id"`
	// UserID 所属用户
	UserID string `json:"user_id"`
	// Title 文档标题
	Title string `json:"title"`
	// Category 文档类别
	Category rag.Category `json:"category"`
}

// StoredChunk 已入库的块
type StoredChunk struct {
	// DocumentID 所属文档 ID
	DocumentID int64 `json:"document_id"`
	// ChunkIndex 块在文档中的位置
	ChunkIndex int `json:"chunk_index"`
	// Text 块文本
	Text string `json:"text"`
	// StartPosition 起始字符偏移（可选）
	StartPosition *int `json:"start_position,omitempty"`
	// EndPosition 结束字符偏移（可选）
	EndPosition *int `json:"end_position,omitempty"`
}

// ChunkStore 块存储接口
//
// 负责文档与块的持久化。实现同时提供 rag.SearchProvider，
// 以关键词重叠作为检索通道。
type ChunkStore interface {
	rag.SearchProvider

	// PutDocument 存储文档并返回其 ID
	PutDocument(ctx context.Context, doc StoredDocument) (int64, error)

	// PutChunks 存储文档的块（覆盖同文档旧块）
	PutChunks(ctx context.Context, documentID int64, chunks []StoredChunk) error

	// GetDocument 获取文档
	GetDocument(ctx context.Context, id int64) (*StoredDocument, error)

	// DeleteDocument 删除文档及其所有块
	DeleteDocument(ctx context.Context, id int64) error

	// Close 关闭存储
	Close() error
}
