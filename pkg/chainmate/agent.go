package chainmate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Tool names exposed to the language model.
const (
	toolNamePortfolioAnalysis = "portfolio_analysis"
	toolNameWhaleAnalysis     = "whale_analysis"
)

// maxToolRounds bounds the model/tool exchange within one conversational turn.
const maxToolRounds = 4

const exampleAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

// agentSystemPrompt instructs the model. It enumerates the tools and carries
// the intent detector's vocabulary as tool-selection guidance; the model
// chooses the tool, but every tool re-validates its own input.
const agentSystemPrompt = `You are ChainMate, an AI-powered crypto portfolio analyst. You help users analyze their crypto wallets and token holdings.

Your capabilities:
- Portfolio Analysis: Analyze wallet holdings, calculate diversity scores, provide insights
- Whale Analysis: Track large token holders (coming soon)

Tool selection guidance:
- Queries mentioning "portfolio", "my wallet", "what do I own", "my tokens", or "analyze" together with a wallet address call the portfolio_analysis tool with that address.
- Queries mentioning "whale", "biggest holder", or "top holder" call the whale_analysis tool.

Guidelines:
1. Always be helpful and accurate with crypto data
2. If a user mentions a wallet address, use the portfolio_analysis tool
3. Explain complex crypto concepts in simple terms
4. Provide actionable insights and recommendations
5. If you need a wallet address, ask the user to provide one
6. Format responses clearly with bullet points and sections when appropriate

Current working features: Portfolio Analysis
Coming soon: Whale tracking, Token discovery, Multi-chain analysis`

const portfolioToolDescription = `Analyze a crypto wallet's portfolio including token holdings, total value, diversity score, and insights. Use this when users ask about their portfolio, what tokens they own, what their wallet is worth, or how diversified they are. Input must be a valid Ethereum wallet address (0x followed by 40 hex characters).`

const whaleToolDescription = `Analyze whale holders of a specific token. Use this when users ask about the biggest or top holders of a token. Currently returns a placeholder response - full implementation coming soon.`

// Tool is one named callable capability exposed to the language model.
// Call always returns a JSON string; tool-level failures are folded into an
// {"error": ...} payload so the model can recover within the same turn.
type Tool struct {
	Name        string
	Description string
	InputName   string
	InputHint   string
	Call        func(ctx context.Context, input string) string
}

// AgentReply is the outcome of one conversational turn.
type AgentReply struct {
	Content   string
	ToolCalls []ToolCallRecord
}

// ToolAgent bridges free-text conversation to tool execution. The real
// implementations drive an external language model; the rules implementation
// maps detected intents to tool calls deterministically.
type ToolAgent interface {
	Reply(ctx context.Context, message string) (*AgentReply, error)
}

// newTools builds the tool set wrapping this Core.
func (c *Core) newTools() []Tool {
	return []Tool{
		{
			Name:        toolNamePortfolioAnalysis,
			Description: portfolioToolDescription,
			InputName:   "address",
			InputHint:   "Ethereum wallet address: 0x followed by 40 hex characters",
			Call:        c.runPortfolioTool,
		},
		{
			Name:        toolNameWhaleAnalysis,
			Description: whaleToolDescription,
			InputName:   "query",
			InputHint:   "Token symbol or free-text whale query",
			Call:        c.runWhaleTool,
		},
	}
}

// runPortfolioTool validates the address independently of the model's
// extraction, runs the analysis engine, and serializes a compact summary.
func (c *Core) runPortfolioTool(ctx context.Context, input string) string {
	address := strings.TrimSpace(input)
	if !IsValidAddress(address) {
		return toolJSON(map[string]any{
			"error":   "Invalid wallet address format. Please provide a valid Ethereum address (0x followed by 40 hex characters).",
			"example": exampleAddress,
		})
	}

	analysis, err := c.AnalyzePortfolio(ctx, address)
	if err != nil {
		return toolJSON(map[string]any{"error": ErrorMessage(err)})
	}

	topTokens := make([]map[string]any, 0, 5)
	for i, token := range analysis.Tokens {
		if i == 5 {
			break
		}
		topTokens = append(topTokens, map[string]any{
			"symbol":  token.Symbol,
			"name":    token.Name,
			"value":   formatUSD(token.Value),
			"balance": displayBalance(token.Amount, token.Decimals),
		})
	}

	return toolJSON(map[string]any{
		"success": true,
		"summary": "Portfolio Analysis for " + analysis.WalletAddress,
		"metrics": map[string]any{
			"totalValue":      formatUSD(analysis.TotalValueUSD),
			"tokenCount":      analysis.TokenCount,
			"diversityScore":  fmt.Sprintf("%d/100", analysis.DiversityScore),
			"portfolioHealth": analysis.PortfolioHealth,
			"topHolding":      fmt.Sprintf("%s (%s)", analysis.TopHolding.Symbol, analysis.TopHolding.Percentage),
		},
		"insights":        analysis.AIInsights,
		"sectorBreakdown": analysis.SectorBreakdown,
		"topTokens":       topTokens,
		"lastActivity":    analysis.LastActivity,
	})
}

// runWhaleTool is an explicit capability boundary: the feature has no real
// data path yet and always answers with a structured notice.
func (c *Core) runWhaleTool(ctx context.Context, input string) string {
	return toolJSON(map[string]any{
		"message":           "Whale analysis feature is coming soon! For now, I can analyze wallet portfolios. Try asking: 'Analyze my portfolio 0x...'",
		"availableFeatures": []string{"Portfolio Analysis", "Token Holdings", "Diversity Scoring"},
	})
}

func toolJSON(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return `{"error":"failed to serialize tool output"}`
	}
	return string(data)
}

func findTool(tools []Tool, name string) *Tool {
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i]
		}
	}
	return nil
}

// toolArgument extracts the tool's single string argument from the model's
// raw argument payload. Models occasionally hand back bare strings instead
// of the declared object; both forms are accepted.
func toolArgument(raw, inputName string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(trimmed), &object); err == nil {
		if value, ok := object[inputName].(string); ok {
			return value
		}
		for _, value := range object {
			if s, ok := value.(string); ok {
				return s
			}
		}
		return trimmed
	}

	var bare string
	if err := json.Unmarshal([]byte(trimmed), &bare); err == nil {
		return bare
	}
	return trimmed
}

// newAgent selects the agent implementation for the configured provider.
func newAgent(cfg Config, tools []Tool, logger *slog.Logger) (ToolAgent, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ModelProvider)) {
	case "", modelProviderOpenAI:
		return newOpenAIAgent(cfg, tools, logger)
	case modelProviderAnthropic:
		return newAnthropicAgent(cfg, tools, logger)
	case modelProviderGemini:
		return newGeminiAgent(cfg, tools, logger)
	case modelProviderRules:
		return newRulesAgent(tools), nil
	default:
		return nil, NewError(ErrCodeModelConfig, fmt.Sprintf("unsupported model provider %q", cfg.ModelProvider))
	}
}

// modelErrorFromStatus maps a provider HTTP status to the error taxonomy so
// callers can distinguish "fix configuration" from "try later".
func modelErrorFromStatus(status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return WrapError(ErrCodeModelConfig, "model API configuration error - please check API key", err)
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return WrapError(ErrCodeModelQuota, "model API quota exceeded - please check your billing", err)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return WrapError(ErrCodeModelTimeout, "model request timeout - please try again", err)
	default:
		return WrapError(ErrCodeInternal, "model request failed", err)
	}
}

// classifyModelError is the fallback classifier for errors that carry no
// HTTP status, sniffing the message the way the original handler did.
func classifyModelError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return WrapError(ErrCodeModelTimeout, "model request timeout - please try again", err)
	}
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "api key") || strings.Contains(message, "unauthorized"):
		return WrapError(ErrCodeModelConfig, "model API configuration error - please check API key", err)
	case strings.Contains(message, "quota") || strings.Contains(message, "billing"):
		return WrapError(ErrCodeModelQuota, "model API quota exceeded - please check your billing", err)
	case strings.Contains(message, "timeout") || strings.Contains(message, "deadline"):
		return WrapError(ErrCodeModelTimeout, "model request timeout - please try again", err)
	default:
		return WrapError(ErrCodeInternal, "Failed to process your message", err)
	}
}
