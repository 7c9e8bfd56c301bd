package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/curio-chat/curio/errors"
)

// HTTPMessenger pushes outbound agent messages to the chat application's
// routing endpoint as {"agent_id": ..., "agent_message": ...}.
type HTTPMessenger struct {
	client      *http.Client
	outboundURL string
}

func NewHTTPMessenger(outboundURL string) *HTTPMessenger {
	return &HTTPMessenger{
		client:      &http.Client{Timeout: 15 * time.Second},
		outboundURL: outboundURL,
	}
}

type outboundMessage struct {
	AgentID      string `json:"agent_id"`
	AgentMessage string `json:"agent_message"`
}

func (m *HTTPMessenger) Send(ctx context.Context, agentID, text string) error {
	body, err := json.Marshal(outboundMessage{
		AgentID:      agentID,
		AgentMessage: text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.outboundURL, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrTransport, "failed to deliver agent message: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(errors.ErrTransport, "agent message rejected with status %d", resp.StatusCode)
	}
	return nil
}
