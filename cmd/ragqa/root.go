package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/perbu/ragqa/pkg/azure"
	"github.com/perbu/ragqa/pkg/chat"
	"github.com/perbu/ragqa/pkg/config"
	"github.com/perbu/ragqa/pkg/corpus"
	"github.com/perbu/ragqa/pkg/embedder"
	"github.com/perbu/ragqa/pkg/index"
	"github.com/perbu/ragqa/pkg/rag"
	"github.com/perbu/ragqa/pkg/repl"
)

const banner = "Simple RAG Project with Azure OpenAI"

type options struct {
	verbose    bool
	corpusPath string
	backend    string
	offline    bool
}

// providerFactory constructs the embedding and chat clients from a validated config.
type providerFactory func(cfg config.Config) (embedder.Embedder, chat.Completer, error)

func azureProviders(cfg config.Config) (embedder.Embedder, chat.Completer, error) {
	client := azure.NewClient(azure.Options{
		Endpoint:   cfg.Endpoint,
		APIKey:     cfg.APIKey,
		APIVersion: cfg.APIVersion,
		Timeout:    cfg.RequestTimeout,
	})
	emb, err := embedder.NewAzureEmbedder(client, cfg.EmbeddingDeployment)
	if err != nil {
		return nil, nil, err
	}
	c, err := chat.NewAzureChat(client, cfg.ChatDeployment)
	if err != nil {
		return nil, nil, err
	}
	return emb, c, nil
}

func newRootCmd(log zerolog.Logger, newProviders providerFactory) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "ragqa",
		Short:         "Answer questions about a small corpus with Azure OpenAI",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), log, newProviders)
		},
	}
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.corpusPath, "corpus", "", "YAML file with the documents to index (default: built-in capitals)")
	cmd.Flags().StringVar(&opts.backend, "index", "memory", "vector index backend: memory or sqlite")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "use the local hash embedder and echo the prompt instead of calling Azure")
	return cmd
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer, log zerolog.Logger, newProviders providerFactory) error {
	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	var (
		emb embedder.Embedder
		llm chat.Completer
	)
	if opts.offline {
		emb = embedder.NewHashEmbedder(embedder.DefaultHashDimension)
		llm = chat.EchoCompleter{}
		log.Info().Msg("offline mode, answers echo the assembled prompt")
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log.Debug().Interface("config", cfg.Redacted()).Msg("configuration loaded")

		emb, llm, err = newProviders(cfg)
		if err != nil {
			return fmt.Errorf("creating providers: %w", err)
		}
	}

	docs := corpus.Default()
	if opts.corpusPath != "" {
		var err error
		if docs, err = corpus.Load(opts.corpusPath); err != nil {
			return err
		}
	}

	ix, err := index.New(ctx, opts.backend)
	if err != nil {
		return err
	}

	engine, err := rag.New(ctx, rag.Options{
		Embedder: emb,
		Chat:     llm,
		Index:    ix,
		Corpus:   docs,
		Logger:   log,
	})
	if err != nil {
		ix.Close()
		return err
	}
	defer engine.Close()

	log.Debug().
		Str("embedder", emb.ModelInfo()).
		Str("chat", llm.ModelInfo()).
		Str("index", opts.backend).
		Int("documents", docs.Len()).
		Int("top_k", engine.TopK()).
		Msg("engine ready")

	color.New(color.FgGreen, color.Bold).Fprintln(out, banner)
	return repl.Run(ctx, in, out, engine)
}
