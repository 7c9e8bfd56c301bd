package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// consoleMessenger prints agent messages to stdout for local testing without
// a running chat application.
type consoleMessenger struct{}

func (consoleMessenger) Send(_ context.Context, agentID, text string) error {
	fmt.Printf("\n[%s] %s\n", agentID, text)
	return nil
}

func newChatCmd(flags *rootFlags) *cobra.Command {
	params := &struct {
		agentID string
	}{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the agent interactively on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := newRuntime(cmd, flags, consoleMessenger{})
			if err != nil {
				return err
			}
			defer runtime.Close()

			ctx := cmd.Context()
			if err := runtime.Orchestrator().RegisterAgent(ctx, params.agentID); err != nil {
				return err
			}

			fmt.Println("Chatting with Curio. Empty line or Ctrl-D exits.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					break
				}
				if err := runtime.Orchestrator().HearText(ctx, params.agentID, line); err != nil {
					runtime.Logger().Error("cycle failed", "err", err)
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&params.agentID, "agent-id", "local", "agent id for this chat session")
	return cmd
}
