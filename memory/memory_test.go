package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/curio-chat/curio/entity"
	"github.com/curio-chat/curio/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_InitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	svc := newTestService(t, gdb, nil)

	require.NoError(t, svc.Initialize(ctx, "a1"))
	require.NoError(t, svc.UpdateProfileField(ctx, "a1", "name", "Ada"))
	require.NoError(t, svc.RecordDialogue(ctx, "a1", entity.SpeakerHuman, "hi"))

	profileBefore, err := svc.HumanProfileText(ctx, "a1")
	require.NoError(t, err)
	conversationBefore, err := svc.CurrentConversationText(ctx, "a1")
	require.NoError(t, err)

	require.NoError(t, svc.Initialize(ctx, "a1"))

	profileAfter, err := svc.HumanProfileText(ctx, "a1")
	require.NoError(t, err)
	conversationAfter, err := svc.CurrentConversationText(ctx, "a1")
	require.NoError(t, err)

	assert.Equal(t, profileBefore, profileAfter)
	assert.Equal(t, conversationBefore, conversationAfter)
}

func TestService_RecordDialoguePreservesOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestDB(t), nil)

	require.NoError(t, svc.RecordDialogue(ctx, "a1", entity.SpeakerHuman, "any AI news?"))
	require.NoError(t, svc.RecordDialogue(ctx, "a1", entity.SpeakerAgent, "let me check"))

	text, err := svc.CurrentConversationText(ctx, "a1")
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Human: any AI news?")
	assert.Contains(t, lines[1], "Agent: let me check")
}

func TestService_SaveNewsDoesNotMarkProcessed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestDB(t), nil)

	id, err := svc.SaveNews(ctx, "a1", &entity.NewsItem{
		Title: "t", Link: "https://x/s1", Content: "body",
	})
	require.NoError(t, err)

	ok, err := svc.IsProcessedBy(ctx, "a1", id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_LinkAlreadyKnown(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestDB(t), nil)

	known, err := svc.LinkAlreadyKnown(ctx, "https://x/unknown")
	require.NoError(t, err)
	assert.Empty(t, known)

	id, err := svc.SaveNews(ctx, "a1", &entity.NewsItem{Title: "t", Link: "https://x/k1"})
	require.NoError(t, err)

	known, err = svc.LinkAlreadyKnown(ctx, "https://x/k1")
	require.NoError(t, err)
	assert.Equal(t, id, known)
}

func TestService_RelevantProcessedNewsFiltersUnprocessed(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)

	// Save three items, mark only two processed by a1. The index deliberately
	// ranks the unprocessed one first.
	archive := memory.NewNewsArchive(gdb)
	var ids []string
	for _, link := range []string{"https://x/r1", "https://x/r2", "https://x/r3"} {
		id, err := archive.Save(ctx, newsItem(link, "item "+link))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, archive.MarkProcessed(ctx, "a1", ids[1]))
	require.NoError(t, archive.MarkProcessed(ctx, "a1", ids[2]))

	svc := newTestService(t, gdb, &fixedIndex{ranked: []string{ids[0], ids[1], ids[2]}})

	items, err := svc.RelevantProcessedNews(ctx, "a1", "anything", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[1], items[0].ID)
	assert.Equal(t, ids[2], items[1].ID)
}

func TestService_RelevantProcessedNewsEmptyIndex(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newTestDB(t), &fixedIndex{})

	items, err := svc.RelevantProcessedNews(ctx, "a1", "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, items)
}
