package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brandquill/ragcontext/pkg/rag"
)

// SQLiteChunkStore SQLite 块存储
//
// 基于 SQLite 的持久化块存储，适用于生产环境。
// Search 以查询词与块文本的关键词重叠比率作为分数，
// 充当混合检索的关键词通道。
type SQLiteChunkStore struct {
	db          *sql.DB
	busyTimeout time.Duration
}

// Option SQLite 块存储选项
type Option func(*SQLiteChunkStore)

// WithBusyTimeout 设置 SQLite busy_timeout（默认 5 秒）
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteChunkStore) {
		s.busyTimeout = d
	}
}

// NewSQLiteChunkStore 创建 SQLite 块存储
func NewSQLiteChunkStore(dbPath string, opts ...Option) (*SQLiteChunkStore, error) {
	store := &SQLiteChunkStore{
		busyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(store)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d", dbPath, store.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store.db = db

	// 初始化表结构
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化表结构
func (s *SQLiteChunkStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'general'
	);
	CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id);

	CREATE TABLE IF NOT EXISTS chunks (
		document_id INTEGER NOT NULL,
		chunk_index INTEGER NOT NULL,
		text TEXT NOT NULL,
		start_position INTEGER,
		end_position INTEGER,
		PRIMARY KEY (document_id, chunk_index),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
	`

	_, err := s.db.Exec(query)
	return err
}

// PutDocument 存储文档并返回其 ID
func (s *SQLiteChunkStore) PutDocument(ctx context.Context, doc StoredDocument) (int64, error) {
	if doc.UserID == "" || doc.Title == "" {
		return 0, ErrInvalidDocument
	}

	category := doc.Category
	if !category.IsValid() {
		category = rag.CategoryGeneral
	}

	if doc.ID > 0 {
		query := `
		INSERT INTO documents (id, user_id, title, category)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			category = excluded.category
		`
		if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.UserID, doc.Title, string(category)); err != nil {
			return 0, err
		}
		return doc.ID, nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (user_id, title, category) VALUES (?, ?, ?)`,
		doc.UserID, doc.Title, string(category),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// PutChunks 存储文档的块（覆盖同文档旧块）
func (s *SQLiteChunkStore) PutChunks(ctx context.Context, documentID int64, chunks []StoredChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, documentID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO chunks (document_id, chunk_index, text, start_position, end_position)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, documentID, chunk.ChunkIndex, chunk.Text, chunk.StartPosition, chunk.EndPosition); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDocument 获取文档
func (s *SQLiteChunkStore) GetDocument(ctx context.Context, id int64) (*StoredDocument, error) {
	var doc StoredDocument
	var category string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, category FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.UserID, &doc.Title, &category)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Category = rag.Category(category)
	return &doc, nil
}

// DeleteDocument 删除文档及其所有块
func (s *SQLiteChunkStore) DeleteDocument(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Search 以关键词重叠作为分数检索块
func (s *SQLiteChunkStore) Search(ctx context.Context, userID, query string, opts rag.SearchOptions) ([]rag.SearchHit, error) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	querySet := make(map[string]struct{}, len(queryTokens))
	for _, token := range queryTokens {
		querySet[token] = struct{}{}
	}

	sqlQuery := `
	SELECT c.text, c.document_id, d.title, c.chunk_index, d.category, c.start_position, c.end_position
	FROM chunks c
	JOIN documents d ON d.id = c.document_id
	WHERE d.user_id = ?
	`
	args := []interface{}{userID}

	if len(opts.Categories) > 0 {
		placeholders := make([]string, len(opts.Categories))
		for i, cat := range opts.Categories {
			placeholders[i] = "?"
			args = append(args, string(cat))
		}
		sqlQuery += fmt.Sprintf(" AND d.category IN (%s)", strings.Join(placeholders, ","))
	}

	if len(opts.DocumentIDs) > 0 {
		placeholders := make([]string, len(opts.DocumentIDs))
		for i, id := range opts.DocumentIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		sqlQuery += fmt.Sprintf(" AND c.document_id IN (%s)", strings.Join(placeholders, ","))
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []rag.SearchHit
	for rows.Next() {
		var hit rag.SearchHit
		var category string

		if err := rows.Scan(&hit.Text, &hit.DocumentID, &hit.DocumentTitle, &hit.ChunkIndex, &category, &hit.StartPosition, &hit.EndPosition); err != nil {
			return nil, err
		}

		hit.Category = rag.Category(category)
		hit.Score = overlapScore(querySet, hit.Text)
		if hit.Score < opts.Threshold || hit.Score == 0 {
			continue
		}

		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	return hits, nil
}

// Close 关闭连接
func (s *SQLiteChunkStore) Close() error {
	return s.db.Close()
}

// overlapScore 计算查询词与文本的重叠比率
func overlapScore(querySet map[string]struct{}, text string) float64 {
	contentTokens := tokenize(text)
	if len(contentTokens) == 0 {
		return 0.0
	}

	seen := make(map[string]struct{}, len(contentTokens))
	overlap := 0
	for _, token := range contentTokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, exists := querySet[token]; exists {
			overlap++
		}
	}

	return float64(overlap) / float64(len(querySet))
}

// tokenize 按空格和标点符号进行简单分词
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

// 编译时接口检查
var _ ChunkStore = (*SQLiteChunkStore)(nil)
