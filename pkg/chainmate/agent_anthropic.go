package chainmate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel    = "claude-3-5-haiku-latest"
	anthropicMaxOutputTokens = 2048
)

// anthropicAgent drives the Anthropic messages API with tool use blocks.
type anthropicAgent struct {
	client anthropic.Client
	model  string
	tools  []Tool
	logger *slog.Logger
}

func newAnthropicAgent(cfg Config, tools []Tool, logger *slog.Logger) (*anthropicAgent, error) {
	if strings.TrimSpace(cfg.ModelAPIKey) == "" {
		return nil, NewError(ErrCodeModelConfig, "model API configuration error - please check API key")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.ModelAPIKey)}
	if base := strings.TrimSpace(cfg.ModelBaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicAgent{
		client: anthropic.NewClient(opts...),
		model:  model,
		tools:  tools,
		logger: logger,
	}, nil
}

func (a *anthropicAgent) Reply(ctx context.Context, message string) (*AgentReply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxOutputTokens,
		System:    []anthropic.TextBlockParam{{Text: agentSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
		Tools: a.toolParams(),
	}

	var records []ToolCallRecord
	for round := 0; round < maxToolRounds; round++ {
		msg, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return nil, a.classify(err)
		}

		var text strings.Builder
		var toolUses []anthropic.ToolUseBlock
		for _, block := range msg.Content {
			switch b := block.AsAny().(type) {
			case anthropic.TextBlock:
				text.WriteString(b.Text)
			case anthropic.ToolUseBlock:
				toolUses = append(toolUses, b)
			}
		}

		if msg.StopReason != anthropic.StopReasonToolUse || len(toolUses) == 0 {
			return &AgentReply{Content: strings.TrimSpace(text.String()), ToolCalls: records}, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		results := make([]anthropic.ContentBlockParamUnion, 0, len(toolUses))
		for _, use := range toolUses {
			tool := findTool(a.tools, use.Name)

			var input, output string
			if tool == nil {
				output = toolJSON(map[string]any{"error": "unknown tool: " + use.Name})
			} else {
				input = toolArgument(string(use.Input), tool.InputName)
				output = tool.Call(ctx, input)
			}

			a.logger.Debug("tool invoked", "tool", use.Name, "round", round)
			records = append(records, ToolCallRecord{Tool: use.Name, Input: input, Output: output})
			results = append(results, anthropic.NewToolResultBlock(use.ID, output, false))
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(results...))
	}

	return nil, NewError(ErrCodeInternal, "tool call limit exceeded without a final answer")
}

func (a *anthropicAgent) toolParams() []anthropic.ToolUnionParam {
	params := make([]anthropic.ToolUnionParam, 0, len(a.tools))
	for _, tool := range a.tools {
		params = append(params, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						tool.InputName: map[string]any{
							"type":        "string",
							"description": tool.InputHint,
						},
					},
					Required: []string{tool.InputName},
				},
			},
		})
	}
	return params
}

func (a *anthropicAgent) classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return modelErrorFromStatus(apiErr.StatusCode, err)
	}
	return classifyModelError(err)
}
