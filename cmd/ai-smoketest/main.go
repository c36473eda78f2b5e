package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	aicore "github.com/EfeDurmaz16/assos/src/ai/core"
	_ "github.com/EfeDurmaz16/assos/src/ai/providers"
	sharedconfig "github.com/EfeDurmaz16/assos/src/config"
)

var (
	providersFlag = flag.String("providers", "openai", "Comma-separated provider list or 'all'")
	modeFlag      = flag.String("mode", "complete", "complete|embed|both")
	systemFlag    = flag.String("system", "", "Override system prompt")
	modelFlag     = flag.String("model", "", "Override model name")
	promptFlag    = flag.String("prompt", defaultPrompt, "User prompt for complete mode")
	textFlag      = flag.String("text", defaultEmbedText, "Text for embed mode")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0.2, "Completion temperature")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

var allProviders = []string{
	"openai",
	"anthropic",
	"fallback",
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}
	if err := sharedconfig.Init(); err != nil {
		log.Fatalf("config: %v", err)
	}

	aiCfg := sharedconfig.LoadAIConfig()
	mode, err := parseMode(*modeFlag)
	if err != nil {
		log.Fatalf("invalid mode: %v", err)
	}

	for _, provider := range providers {
		if err := runProvider(provider, mode, aiCfg); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string, mode runMode, aiCfg sharedconfig.AIConfig) error {
	baseURL := aiCfg.OpenAIBaseURL
	if provider == "anthropic" {
		baseURL = aiCfg.AnthropicBaseURL
	}
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:            provider,
		SystemPrompt:        *systemFlag,
		Model:               pickFirst(*modelFlag, aiCfg.Model),
		Temperature:         *tempFlag,
		MaxCompletionTokens: aiCfg.MaxTokens,
		OpenAIKey:           aiCfg.OpenAIKey,
		ClaudeKey:           aiCfg.ClaudeKey,
		BaseURL:             baseURL,
	})
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	fmt.Printf("=== %s ===\n", provider)
	if mode == modeComplete || mode == modeBoth {
		if err := executeCompleteTest(client); err != nil {
			fmt.Printf("complete ❌ %v\n", err)
		}
	}
	if mode == modeEmbed || mode == modeBoth {
		embedder, ok := client.(aicore.Embedder)
		if !ok {
			fmt.Printf("embed ⏭ provider has no embedding endpoint\n")
			return nil
		}
		if err := executeEmbedTest(embedder, aiCfg.EmbeddingModel); err != nil {
			fmt.Printf("embed ❌ %v\n", err)
		}
	}
	return nil
}

func executeCompleteTest(client aicore.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	reply, err := client.Complete(ctx, *promptFlag, aicore.Options{
		Model:        *modelFlag,
		SystemPrompt: pickFirst(*systemFlag, defaultSystemPrompt),
		Temperature:  *tempFlag,
	})
	if err != nil {
		return err
	}
	fmt.Printf("complete ✅ (%.1fs)\n%s\n", time.Since(start).Seconds(), truncate(reply, *maxLenFlag))
	return nil
}

func executeEmbedTest(embedder aicore.Embedder, model string) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	vec, err := embedder.Embed(ctx, *textFlag, model)
	if err != nil {
		return err
	}
	preview := vec
	if len(preview) > 4 {
		preview = preview[:4]
	}
	fmt.Printf("embed ✅ (%.1fs) dim=%d head=%v\n", time.Since(start).Seconds(), len(vec), preview)
	return nil
}

func resolveProviders(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "all") {
		return append([]string{}, allProviders...)
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	var out []string
	seen := map[string]struct{}{}
	for _, p := range parts {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func pickFirst(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseMode(input string) (runMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "complete":
		return modeComplete, nil
	case "embed":
		return modeEmbed, nil
	case "both":
		return modeBoth, nil
	default:
		return modeComplete, errors.New("expected complete, embed, or both")
	}
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:limit]) + "...(truncated)"
}

type runMode int

const (
	modeComplete runMode = iota
	modeEmbed
	modeBoth
)

const (
	defaultPrompt    = "Suggest three YouTube video titles about budget home espresso setups."
	defaultEmbedText = "budget home espresso setup for beginners"
)

const defaultSystemPrompt = "You are a concise assistant that helps plan YouTube content for internal operator testing."
