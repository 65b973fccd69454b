package chainmate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Model provider identifiers accepted by Config.ModelProvider.
const (
	modelProviderOpenAI    = "openai"
	modelProviderAnthropic = "anthropic"
	modelProviderGemini    = "gemini"
	modelProviderRules     = "rules"
)

// Config carries the credentials and endpoints the core depends on. It is
// passed in explicitly; business logic never reads the process environment.
type Config struct {
	// TokenAPIBaseURL is the balance provider endpoint. Empty selects the
	// default Graph token API host.
	TokenAPIBaseURL string
	// TokenAPIKey is the balance provider bearer token.
	TokenAPIKey string

	// ModelProvider selects the agent backend: openai (default), anthropic,
	// gemini, or rules (deterministic, no model call).
	ModelProvider string
	// ModelAPIKey authenticates against the model provider.
	ModelAPIKey string
	// ModelBaseURL overrides the model endpoint (OpenAI-compatible servers,
	// proxies). Empty uses the provider default.
	ModelBaseURL string
	// Model is the model name, e.g. "gpt-4o-mini".
	Model string
}

// Options controls Core initialization.
type Options struct {
	Config Config
	Logger *slog.Logger
	// HTTPClient overrides the balance provider transport, mainly for tests.
	HTTPClient HTTPDoer
	// Provider overrides the balance provider entirely.
	Provider BalanceProvider
	// Agent overrides the tool-routing agent.
	Agent ToolAgent
}

// Core provides the portfolio analysis engine and the tool-routing agent.
// It holds no mutable request state; concurrent calls are independent.
type Core struct {
	cfg      Config
	logger   *slog.Logger
	provider BalanceProvider
	tools    []Tool
	agent    ToolAgent
}

// New initializes a Core from the provided options.
func New(opts Options) (*Core, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Core{cfg: opts.Config, logger: logger}

	if opts.Provider != nil {
		c.provider = opts.Provider
	} else {
		client := opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: defaultHTTPTimeout}
		}
		c.provider = newGraphProvider(opts.Config.TokenAPIBaseURL, opts.Config.TokenAPIKey, client, logger)
	}

	c.tools = c.newTools()

	if opts.Agent != nil {
		c.agent = opts.Agent
	} else {
		agent, err := newAgent(opts.Config, c.tools, logger)
		if err != nil {
			return nil, err
		}
		c.agent = agent
	}

	return c, nil
}

// Chat handles one conversational turn: the agent decides whether to invoke
// tools, and the reply carries tool call records only when at least one
// tool ran.
func (c *Core) Chat(ctx context.Context, message string) (*ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, NewError(ErrCodeValidation, "Message is required")
	}

	reply, err := c.agent.Reply(ctx, message)
	if err != nil {
		return nil, err
	}

	msg := &ChatMessage{
		ID:        newMessageID(),
		Role:      "assistant",
		Content:   reply.Content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(reply.ToolCalls) > 0 {
		msg.Data = &MessageData{ToolCalls: reply.ToolCalls}
	}

	c.logger.Info("chat turn completed",
		"message_id", msg.ID,
		"tool_calls", len(reply.ToolCalls),
	)
	return msg, nil
}

func newMessageID() string {
	return fmt.Sprintf("msg_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
