package cmd

import (
	"github.com/curio-chat/curio/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newInitAgentCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-agent <agent-id>",
		Short: "Register an agent and seed its memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := newRuntime(cmd, flags, server.NewHTTPMessenger(envOutboundURL()))
			if err != nil {
				return err
			}
			defer runtime.Close()

			if err := runtime.Orchestrator().RegisterAgent(cmd.Context(), args[0]); err != nil {
				return errors.Wrapf(err, "failed to register agent %s", args[0])
			}
			runtime.Logger().Info("agent registered", "agent_id", args[0])
			return nil
		},
	}
}
