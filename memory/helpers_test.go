package memory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/curio-chat/curio/internal/db"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/curio-chat/curio/memory"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "curio-test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	t.Cleanup(func() {
		require.NoError(t, db.Close(gdb))
	})
	return gdb
}

// fakeEmbedder returns canned vectors per exact text, falling back to a
// constant direction so every text embeds to something.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, texts ...string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 0, 0}
		}
	}
	return out, nil
}

// fixedIndex is a SemanticIndex whose ranking is whatever the test says,
// regardless of processed state.
type fixedIndex struct {
	ranked []string
}

func (f *fixedIndex) Index(context.Context, string, string) error {
	return nil
}

func (f *fixedIndex) Query(_ context.Context, _ string, topK int) ([]string, error) {
	if len(f.ranked) > topK {
		return f.ranked[:topK], nil
	}
	return f.ranked, nil
}

func newTestService(t *testing.T, gdb *gorm.DB, index memory.SemanticIndex) *memory.Service {
	t.Helper()

	if index == nil {
		index = &fixedIndex{}
	}
	seed := map[string]string{"name": "", "interests": ""}
	return memory.NewService(
		mylog.NewLogger("error", "default"),
		gdb,
		memory.NewShortTermStore(gdb, 5),
		memory.NewFactStore(gdb, seed),
		memory.NewNewsArchive(gdb),
		index,
	)
}
