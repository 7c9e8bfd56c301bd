package memory_test

import (
	"context"
	"testing"

	"github.com/curio-chat/curio/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeed = map[string]string{
	"name":      "",
	"interests": "",
}

func TestFactStore_GetReturnsSeedTemplateWhenAbsent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFactStore(newTestDB(t), testSeed)

	fields, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, testSeed, fields)
}

func TestFactStore_SetFieldAllowsNewFieldNames(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFactStore(newTestDB(t), testSeed)

	// Open schema: the decision layer may introduce fields the seed never had.
	require.NoError(t, store.SetField(ctx, "a1", "favorite_editor", "vim"))
	require.NoError(t, store.SetField(ctx, "a1", "name", "Ada"))

	fields, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "vim", fields["favorite_editor"])
	assert.Equal(t, "Ada", fields["name"])
	assert.Contains(t, fields, "interests")
}

func TestFactStore_SetFieldRejectsEmptyName(t *testing.T) {
	store := memory.NewFactStore(newTestDB(t), testSeed)

	err := store.SetField(context.Background(), "a1", "  ", "x")
	require.Error(t, err)
}

func TestFactStore_InitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFactStore(newTestDB(t), testSeed)

	require.NoError(t, store.Initialize(ctx, "a1"))
	require.NoError(t, store.SetField(ctx, "a1", "name", "Ada"))
	require.NoError(t, store.Initialize(ctx, "a1"))

	fields, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", fields["name"])
}

func TestFactStore_AsPromptTextIsDeterministic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFactStore(newTestDB(t), testSeed)

	require.NoError(t, store.SetField(ctx, "a1", "name", "Ada"))
	require.NoError(t, store.SetField(ctx, "a1", "interests", "compilers"))

	first, err := store.AsPromptText(ctx, "a1")
	require.NoError(t, err)
	second, err := store.AsPromptText(ctx, "a1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "interests: compilers\nname: Ada\n", first)
}
