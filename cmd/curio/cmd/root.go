package cmd

import (
	"github.com/curio-chat/curio"
	"github.com/curio-chat/curio/action"
	"github.com/curio-chat/curio/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	characterFile string
	sourcesFile   string
	databasePath  string
	logLevel      string
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "curio",
		Short:        "Curio conversational companion runtime",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; env vars may come from the shell.
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.characterFile, "character", "", "character yaml file (default: built-in Curio)")
	cmd.PersistentFlags().StringVar(&flags.sourcesFile, "sources", "", "news sources yaml file (default: built-in catalog)")
	cmd.PersistentFlags().StringVar(&flags.databasePath, "db", "", "sqlite database path")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(flags),
		newChatCmd(flags),
		newInitAgentCmd(flags),
	)
	return cmd
}

// newRuntime assembles the runtime from env plus flags. The messenger varies
// by command: the server pushes over HTTP, the chat loop prints to stdout.
func newRuntime(cmd *cobra.Command, flags *rootFlags, messenger action.Messenger, extra ...curio.Option) (*curio.Runtime, error) {
	runtimeConfig := config.NewRuntimeConfig()
	runtimeConfig.ApplyEnv()
	if flags.databasePath != "" {
		runtimeConfig.DatabasePath = flags.databasePath
	}
	if flags.logLevel != "" {
		runtimeConfig.LogLevel = flags.logLevel
	}

	modelConfig := config.NewModelConfig()
	modelConfig.ApplyEnv()

	opts := []curio.Option{
		curio.WithRuntimeConfig(runtimeConfig),
		curio.WithModelConfig(modelConfig),
		curio.WithMessenger(messenger),
	}

	if flags.characterFile != "" {
		character, err := config.LoadCharacterFromFile(flags.characterFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load character file %s", flags.characterFile)
		}
		opts = append(opts, curio.WithCharacter(character))
	}
	if flags.sourcesFile != "" {
		sources, err := config.LoadNewsSourcesFromFile(flags.sourcesFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load sources file %s", flags.sourcesFile)
		}
		opts = append(opts, curio.WithNewsSources(sources))
	}
	opts = append(opts, extra...)

	return curio.NewRuntime(cmd.Context(), opts...)
}
