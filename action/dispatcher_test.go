package action_test

import (
	"context"
	"testing"

	"github.com/curio-chat/curio/action"
	"github.com/curio-chat/curio/directive"
	"github.com/curio-chat/curio/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_SayText(t *testing.T) {
	svc := newTestMemory(t, &stubIndex{})
	messenger := &fakeMessenger{}
	d := newDispatcher(action.NewSayText(svc, messenger))

	err := d.Dispatch(context.Background(), "a1", &directive.Directive{
		ActionName: "say_text",
		ActionArgs: map[string]string{"message": "hey there!"},
	})
	require.NoError(t, err)

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "a1", messenger.sent[0].AgentID)
	assert.Equal(t, "hey there!", messenger.sent[0].Text)

	conv, err := svc.CurrentConversationText(context.Background(), "a1")
	require.NoError(t, err)
	assert.Contains(t, conv, "Agent: hey there!")
}

func TestDispatch_UnknownActionIsIgnored(t *testing.T) {
	svc := newTestMemory(t, &stubIndex{})
	messenger := &fakeMessenger{}
	d := newDispatcher(action.NewSayText(svc, messenger))

	err := d.Dispatch(context.Background(), "a1", &directive.Directive{
		ActionName: "teleport",
		ActionArgs: map[string]string{"destination": "moon"},
	})
	require.NoError(t, err)
	assert.Empty(t, messenger.sent)
}

func TestDispatch_ExecutionFailureIsReported(t *testing.T) {
	svc := newTestMemory(t, &stubIndex{})
	d := newDispatcher(action.NewSayText(svc, &fakeMessenger{err: assert.AnError}))

	err := d.Dispatch(context.Background(), "a1", &directive.Directive{
		ActionName: "say_text",
		ActionArgs: map[string]string{"message": "hi"},
	})
	assert.Error(t, err)
}

func TestDispatch_AskQuestionRecordsIntent(t *testing.T) {
	svc := newTestMemory(t, &stubIndex{})
	messenger := &fakeMessenger{}
	d := newDispatcher(action.NewAskQuestion(svc, messenger))

	err := d.Dispatch(context.Background(), "a1", &directive.Directive{
		ActionName: "ask_question",
		ActionArgs: map[string]string{"question": "what timezone are you in?"},
	})
	require.NoError(t, err)

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "what timezone are you in?", messenger.sent[0].Text)
}

func TestSpecs_RegistrationOrderAndParams(t *testing.T) {
	svc := newTestMemory(t, &stubIndex{})
	messenger := &fakeMessenger{}
	d := newDispatcher(
		action.NewSayText(svc, messenger),
		action.NewAskQuestion(svc, messenger),
	)

	specs := d.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "say_text", specs[0].Name)
	assert.Equal(t, "ask_question", specs[1].Name)
	assert.Contains(t, specs[0].Params["message"], "message text")
	assert.Contains(t, specs[1].Params["question"], "clarifying question")
}

var _ memory.SemanticIndex = (*stubIndex)(nil)
