// Package main is the legalrag CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/cli"
	"github.com/omkar2816/Legal-RAG-System/internal/config"
	"github.com/omkar2816/Legal-RAG-System/internal/embedding"
	"github.com/omkar2816/Legal-RAG-System/internal/metrics"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/ranking"
	"github.com/omkar2816/Legal-RAG-System/internal/retrieval"
	"github.com/omkar2816/Legal-RAG-System/internal/server"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/legalrag/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used, so that "legalrag server" from the project dir uses
// the project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "retrieve":
		runRetrieve()
	case "intent":
		runIntent()
	case "delete":
		runDelete()
	case "stats":
		runStats()
	case "version", "--version", "-v":
		fmt.Printf("legalrag version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (variant searches, scoring, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	m := metrics.New()
	components, err := initializeComponents(cfg, logger, m)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(
		components.Engine,
		components.Store,
		components.Embedder,
		&cfg.Server,
		logger,
		m,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printRetrieveUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: legalrag retrieve [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Queries containing several questions are split and answered independently.

Examples:
  legalrag retrieve waiting period for maternity
  legalrag retrieve "What is the waiting period? What is excluded?"
  legalrag retrieve --top-k 5 --output json grace period for premium payment
  legalrag retrieve --doc policy-2024 exclusions for dental treatment
`)
}

// buildQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// reorderArgs moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "legalrag retrieve
// \"query\" -top-k 5" would otherwise leave -top-k unparsed.
func reorderArgs(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runRetrieve() {
	fs := flag.NewFlagSet("retrieve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = talk to the vector store directly)")
	topK := fs.Int("top-k", 10, "number of passages per question")
	docID := fs.String("doc", "", "restrict retrieval to a single document ID")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one passage per line), or json (parseable)")
	fs.Usage = func() { printRetrieveUsage(fs) }
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	if fs.NArg() < 1 {
		printRetrieveUsage(fs)
		os.Exit(1)
	}
	queryStr := buildQuery(fs.Args())
	if queryStr == "" {
		printRetrieveUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var filter map[string]string
	if *docID != "" {
		filter = map[string]string{"doc_id": *docID}
	}

	var response *models.RetrievalResponse
	if *serverURL != "" {
		response, err = retrieveViaHTTP(*serverURL, queryStr, *topK, filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Retrieval failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := mustInitialize(*configPath)
		defer components.Close()
		response, err = components.Engine.Retrieve(
			context.Background(), models.CoerceInput(queryStr), *topK,
			vectorstore.Filter(filter))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Retrieval failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WriteRetrievalResponse(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func retrieveViaHTTP(serverURL, query string, topK int, filter map[string]string) (*models.RetrievalResponse, error) {
	body, err := json.Marshal(models.RetrievalRequest{Query: query, TopK: topK, Filter: filter})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/retrieve", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.RetrievalResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runIntent() {
	fs := flag.NewFlagSet("intent", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: legalrag intent [flags] <query>")
		os.Exit(1)
	}
	queryStr := buildQuery(fs.Args())

	components := mustInitialize(*configPath)
	defer components.Close()

	analyses := components.Engine.Analyze(models.CoerceInput(queryStr))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analyses); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: legalrag delete [flags] <document-id>")
		os.Exit(1)
	}
	docID := fs.Arg(0)

	components := mustInitialize(*configPath)
	defer components.Close()

	if err := components.Store.DeleteByDocument(context.Background(), docID); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document deleted: %s\n", docID)
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = talk to the vector store directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var stats vectorstore.Stats
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/admin/stats")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Stats failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Stats failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			VectorStore vectorstore.Stats `json:"vector_store"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
		stats = out.VectorStore
	} else {
		components := mustInitialize(*configPath)
		defer components.Close()
		var err error
		stats, err = components.Store.Stats(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Stats failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("backend:        %s\n", stats.Backend)
		fmt.Printf("passage_count:  %d\n", stats.PassageCount)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Store    vectorstore.VectorStore
	Embedder *embedding.CachedEmbedder
	Engine   *retrieval.Engine
}

func (c *Components) Close() {
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*Components, error) {
	store, err := vectorstore.New(cfg.VectorStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}

	client := embedding.NewClient(cfg.Embedding.Client, logger)
	embedder, err := embedding.NewCachedEmbedder(client, cfg.Embedding.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	rcfg := &cfg.Retrieval
	searcher := retrieval.NewSemanticSearcher(embedder, store, rcfg, logger, m)
	corpus := retrieval.NewCorpusAccessor(store, rcfg.CorpusScanCap, logger)
	anchor := retrieval.NewKeywordAnchor(
		corpus, ranking.NewKeywordScorer(&rcfg.Ranking), rcfg, logger)
	engine := retrieval.New(rcfg, nil, searcher, anchor, logger, m)

	return &Components{Store: store, Embedder: embedder, Engine: engine}, nil
}

// mustInitialize loads config, builds a logger, and wires components for a
// one-shot command, exiting on any failure.
func mustInitialize(configPath string) *Components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return components
}

func printUsage() {
	fmt.Println(`legalrag - Hybrid retrieval engine for legal documents

Usage:
  legalrag server [flags]            Start the HTTP server
  legalrag retrieve [flags] <query>  Retrieve passages for a query
  legalrag intent [flags] <query>    Show query analysis (intent, keywords, variants)
  legalrag delete [flags] <id>       Delete all passages of a document
  legalrag stats [flags]             Show vector store stats
  legalrag version                   Show version
  legalrag help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/legalrag/config.yaml)
  --debug            Enable debug logging (variant searches, scoring, etc.)

Retrieve Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to talk to the vector store directly.
  --top-k int        Number of passages per question (default: 10)
  --output string    Output format: text, compact, or json (default: text)

Stats Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  legalrag server
  legalrag retrieve "What is the waiting period for maternity coverage?"
  legalrag retrieve --output json grace period   # structured JSON for other apps
  legalrag intent "how much is the copay for specialist visits"
  legalrag delete policy-123
  legalrag stats --output json`)
}
