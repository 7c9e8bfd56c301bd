package memory

import (
	"context"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/llm"
	"gorm.io/gorm"
)

// SqliteVecIndex persists embeddings in a vec0 virtual table on the shared
// database handle.
type SqliteVecIndex struct {
	db       *gorm.DB
	embedder llm.Embedder
	dim      int
}

var _ SemanticIndex = (*SqliteVecIndex)(nil)

func NewSqliteVecIndex(db *gorm.DB, embedder llm.Embedder, dimension int) (*SqliteVecIndex, error) {
	var sqliteVersion, vecVersion string
	if err := db.Raw("SELECT sqlite_version(), vec_version()").Row().Scan(&sqliteVersion, &vecVersion); err != nil {
		return nil, errors.Wrapf(err, "sqlite-vec extension not properly loaded")
	}

	createTableSQL := fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS news_vectors USING vec0(
			news_id TEXT PRIMARY KEY,
			embedding float[%d]
		);
	`, dimension)
	if err := db.Exec(createTableSQL).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to create news_vectors table")
	}

	return &SqliteVecIndex{db: db, embedder: embedder, dim: dimension}, nil
}

func (s *SqliteVecIndex) Index(ctx context.Context, newsID, text string) error {
	embeddings, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return errors.Wrapf(err, "failed to embed news %s", newsID)
	}
	if len(embeddings) == 0 {
		return errors.Errorf("embedder returned no vector for news %s", newsID)
	}

	serialized, err := sqlite_vec.SerializeFloat32(embeddings[0])
	if err != nil {
		return errors.Wrapf(err, "failed to serialize embedding for news %s", newsID)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM news_vectors WHERE news_id = ?", newsID).Error; err != nil {
			return errors.Wrapf(err, "failed to delete existing vector for news %s", newsID)
		}
		if err := tx.Exec("INSERT INTO news_vectors (news_id, embedding) VALUES (?, ?)", newsID, serialized).Error; err != nil {
			return errors.Wrapf(err, "failed to insert vector for news %s", newsID)
		}
		return nil
	})
}

func (s *SqliteVecIndex) Query(ctx context.Context, query string, topK int) ([]string, error) {
	if topK < 1 {
		topK = 1
	}

	var count int64
	if err := s.db.WithContext(ctx).Raw("SELECT COUNT(*) FROM news_vectors").Scan(&count).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to count news vectors")
	}
	if count == 0 {
		return nil, nil
	}

	embeddings, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to embed query")
	}
	if len(embeddings) == 0 {
		return nil, nil
	}

	serialized, err := sqlite_vec.SerializeFloat32(embeddings[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize query embedding")
	}

	rows, err := s.db.WithContext(ctx).Raw(`
		SELECT news_id
		FROM news_vectors
		WHERE embedding MATCH ?
		ORDER BY distance
		LIMIT ?
	`, serialized, topK).Rows()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute vector search")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrapf(err, "failed to scan vector search row")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
