package action_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/curio-chat/curio/action"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/internal/db"
	"github.com/curio-chat/curio/memory"
	"github.com/curio-chat/curio/news"
	"github.com/curio-chat/curio/prompt"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(filepath.Join(t.TempDir(), "action_test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gormDB))
	t.Cleanup(func() {
		require.NoError(t, db.Close(gormDB))
	})
	return gormDB
}

// stubIndex ranks every indexed id in insertion order, good enough for
// exercising the retrieval path without real embeddings.
type stubIndex struct {
	ids []string
}

func (s *stubIndex) Index(_ context.Context, newsID, _ string) error {
	s.ids = append(s.ids, newsID)
	return nil
}

func (s *stubIndex) Query(_ context.Context, _ string, topK int) ([]string, error) {
	if len(s.ids) < topK {
		topK = len(s.ids)
	}
	return s.ids[:topK], nil
}

func newTestMemory(t *testing.T, index memory.SemanticIndex) *memory.Service {
	t.Helper()
	gormDB := newTestDB(t)
	svc := memory.NewService(
		testLogger(),
		gormDB,
		memory.NewShortTermStore(gormDB, 10),
		memory.NewFactStore(gormDB, map[string]string{"name": ""}),
		memory.NewNewsArchive(gormDB),
		index,
	)
	require.NoError(t, svc.Initialize(context.Background(), "a1"))
	return svc
}

type sentMessage struct {
	AgentID string
	Text    string
}

type fakeMessenger struct {
	sent []sentMessage
	err  error
}

func (m *fakeMessenger) Send(_ context.Context, agentID, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{AgentID: agentID, Text: text})
	return nil
}

type fakeLLM struct {
	response string
	prompts  []string
	err      error
}

func (f *fakeLLM) Complete(_ context.Context, promptText string) (string, error) {
	f.prompts = append(f.prompts, promptText)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeProducer struct {
	candidates []news.Candidate
	bodies     map[string]string
	fetchErr   error
}

func (p *fakeProducer) FetchCandidates(_ context.Context) ([]news.Candidate, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.candidates, nil
}

func (p *fakeProducer) FetchBody(_ context.Context, c news.Candidate) (string, error) {
	return p.bodies[c.Link], nil
}

func testComposer() *prompt.Composer {
	return prompt.NewComposer(config.Character{
		Name:        "Curio",
		Identity:    "A curious companion.",
		Purpose:     "Keep the human informed.",
		Personality: "Warm and nerdy.",
	})
}

func newDispatcher(actions ...action.Action) *action.Dispatcher {
	return action.NewDispatcher(testLogger(), actions...)
}
