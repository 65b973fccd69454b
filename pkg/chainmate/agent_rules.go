package chainmate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// rulesAgent maps detected intents directly to tool calls, with no model in
// the loop. It keeps the deterministic core testable and serves deployments
// without model credentials.
type rulesAgent struct {
	tools []Tool
}

func newRulesAgent(tools []Tool) *rulesAgent {
	return &rulesAgent{tools: tools}
}

func (a *rulesAgent) Reply(ctx context.Context, message string) (*AgentReply, error) {
	intent := DetectIntent(message)

	switch intent.Tag {
	case IntentPortfolioAnalysis:
		if intent.Address == "" {
			return &AgentReply{
				Content: "I can analyze a wallet's portfolio for you. Please share a wallet address (0x followed by 40 hex characters).",
			}, nil
		}
		return a.callTool(ctx, toolNamePortfolioAnalysis, intent.Address, renderPortfolioReply)
	case IntentWhaleAnalysis:
		return a.callTool(ctx, toolNameWhaleAnalysis, message, renderWhaleReply)
	default:
		return &AgentReply{
			Content: "I'm ChainMate, a crypto portfolio analyst. Ask me to analyze a wallet - for example: \"Analyze this wallet: " + exampleAddress + "\".",
		}, nil
	}
}

func (a *rulesAgent) callTool(ctx context.Context, name, input string, render func(string) string) (*AgentReply, error) {
	tool := findTool(a.tools, name)
	if tool == nil {
		return nil, NewError(ErrCodeInternal, "tool not registered: "+name)
	}
	output := tool.Call(ctx, input)
	return &AgentReply{
		Content:   render(output),
		ToolCalls: []ToolCallRecord{{Tool: name, Input: input, Output: output}},
	}, nil
}

// renderPortfolioReply turns the portfolio tool's JSON output into the
// assistant's text, the part the model would otherwise compose.
func renderPortfolioReply(output string) string {
	var payload struct {
		Error    string         `json:"error"`
		Summary  string         `json:"summary"`
		Metrics  map[string]any `json:"metrics"`
		Insights []string       `json:"insights"`
	}
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		return "I couldn't analyze that wallet right now. Please try again."
	}
	if payload.Error != "" {
		return "I couldn't analyze that wallet: " + payload.Error
	}

	var sb strings.Builder
	sb.WriteString(payload.Summary)
	sb.WriteString("\n")
	for _, key := range []string{"totalValue", "tokenCount", "diversityScore", "portfolioHealth", "topHolding"} {
		if value, ok := payload.Metrics[key]; ok {
			fmt.Fprintf(&sb, "- %s: %v\n", key, value)
		}
	}
	if len(payload.Insights) > 0 {
		sb.WriteString("Insights:\n")
		for _, insight := range payload.Insights {
			sb.WriteString("- " + insight + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderWhaleReply(output string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(output), &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "Whale analysis is coming soon."
}
