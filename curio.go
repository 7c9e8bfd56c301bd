// Package curio wires the whole companion runtime: storage, memory, model
// clients, actions, and the orchestrator, behind one constructor with
// functional options.
package curio

import (
	"context"
	"log/slog"

	"github.com/curio-chat/curio/action"
	"github.com/curio-chat/curio/agent"
	"github.com/curio-chat/curio/config"
	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/db"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/curio-chat/curio/llm"
	"github.com/curio-chat/curio/memory"
	"github.com/curio-chat/curio/news"
	"github.com/curio-chat/curio/prompt"
	"gorm.io/gorm"
)

type (
	Runtime struct {
		logger       *slog.Logger
		db           *gorm.DB
		orchestrator *agent.Orchestrator
		memory       *memory.Service

		runtimeConfig *config.RuntimeConfig
		modelConfig   *config.ModelConfig
		character     *config.Character
		sources       []config.NewsSource

		messenger action.Messenger
		producer  news.Producer
		llmClient llm.Client
		embedder  llm.Embedder
		index     memory.SemanticIndex
	}
	Option func(*Runtime)
)

func NewRuntime(ctx context.Context, optionFuncs ...Option) (*Runtime, error) {
	r := &Runtime{
		runtimeConfig: config.NewRuntimeConfig(),
		modelConfig:   config.NewModelConfig(),
	}
	for _, f := range optionFuncs {
		f(r)
	}

	if r.logger == nil {
		r.logger = mylog.NewLogger(r.runtimeConfig.LogLevel, r.runtimeConfig.LogHandler)
	}
	if r.character == nil {
		character := config.DefaultCharacter()
		r.character = &character
	}
	if r.sources == nil {
		r.sources = config.DefaultNewsSources()
	}
	if r.messenger == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "messenger is required")
	}

	gormDB, err := db.Open(r.runtimeConfig.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return nil, err
	}
	r.db = gormDB

	if r.llmClient == nil {
		if r.llmClient, err = newLLMClient(r.modelConfig); err != nil {
			return nil, err
		}
	}
	if r.embedder == nil && r.modelConfig.OpenAIAPIKey != "" {
		if r.embedder, err = llm.NewOpenAIEmbedder(r.modelConfig); err != nil {
			return nil, err
		}
	}

	if r.index == nil {
		if r.index, err = newSemanticIndex(r, gormDB); err != nil {
			return nil, err
		}
	}

	r.memory = memory.NewService(
		r.logger,
		gormDB,
		memory.NewShortTermStore(gormDB, r.runtimeConfig.ShortTermWindow),
		memory.NewFactStore(gormDB, r.character.ProfileSeed),
		memory.NewNewsArchive(gormDB),
		r.index,
	)

	if r.producer == nil {
		r.producer = news.NewFetcher(r.logger, r.sources)
	}

	composer := prompt.NewComposer(*r.character)
	dispatcher := action.NewDispatcher(r.logger,
		action.NewSayText(r.memory, r.messenger),
		action.NewAskQuestion(r.memory, r.messenger),
		action.NewFetchLatestNews(r.logger, r.memory, r.producer, r.llmClient, composer, r.messenger),
		action.NewFetchNewsDetails(r.memory, r.llmClient, composer, r.messenger),
	)

	r.orchestrator = agent.NewOrchestrator(
		r.logger,
		*r.character,
		r.memory,
		agent.NewPersonaStore(gormDB, r.character.Behavior),
		r.llmClient,
		composer,
		dispatcher,
	)

	return r, nil
}

func newLLMClient(conf *config.ModelConfig) (llm.Client, error) {
	switch conf.Provider {
	case "anthropic":
		return llm.NewAnthropicClient(conf)
	case "openai":
		return llm.NewOpenAIClient(conf)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown model provider %q", conf.Provider)
	}
}

// newSemanticIndex picks the sqlite-vec index when it is enabled and an
// embedder exists, falling back to the in-memory index, and finally to a
// no-op when there is no embedder at all.
func newSemanticIndex(r *Runtime, gormDB *gorm.DB) (memory.SemanticIndex, error) {
	if r.embedder == nil {
		r.logger.Warn("no embedder configured, semantic news retrieval disabled")
		return noopIndex{}, nil
	}
	if r.runtimeConfig.VectorEnabled {
		index, err := memory.NewSqliteVecIndex(gormDB, r.embedder, r.runtimeConfig.EmbeddingDimension)
		if err != nil {
			r.logger.Warn("sqlite-vec unavailable, falling back to in-memory index", "err", err)
			return memory.NewInMemoryIndex(r.embedder), nil
		}
		return index, nil
	}
	return memory.NewInMemoryIndex(r.embedder), nil
}

type noopIndex struct{}

func (noopIndex) Index(context.Context, string, string) error { return nil }
func (noopIndex) Query(context.Context, string, int) ([]string, error) {
	return nil, nil
}

func (r *Runtime) Orchestrator() *agent.Orchestrator {
	return r.orchestrator
}

func (r *Runtime) Memory() *memory.Service {
	return r.memory
}

func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

func (r *Runtime) RuntimeConfig() *config.RuntimeConfig {
	return r.runtimeConfig
}

func (r *Runtime) Close() error {
	return db.Close(r.db)
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

func WithRuntimeConfig(conf *config.RuntimeConfig) Option {
	return func(r *Runtime) {
		r.runtimeConfig = conf
	}
}

func WithModelConfig(conf *config.ModelConfig) Option {
	return func(r *Runtime) {
		r.modelConfig = conf
	}
}

func WithCharacter(character config.Character) Option {
	return func(r *Runtime) {
		r.character = &character
	}
}

func WithNewsSources(sources []config.NewsSource) Option {
	return func(r *Runtime) {
		r.sources = sources
	}
}

func WithMessenger(messenger action.Messenger) Option {
	return func(r *Runtime) {
		r.messenger = messenger
	}
}

func WithNewsProducer(producer news.Producer) Option {
	return func(r *Runtime) {
		r.producer = producer
	}
}

func WithLLMClient(client llm.Client) Option {
	return func(r *Runtime) {
		r.llmClient = client
	}
}

func WithEmbedder(embedder llm.Embedder) Option {
	return func(r *Runtime) {
		r.embedder = embedder
	}
}

func WithSemanticIndex(index memory.SemanticIndex) Option {
	return func(r *Runtime) {
		r.index = index
	}
}
