package chainmate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openaiAgent drives an OpenAI-compatible chat completions endpoint with
// function tools. ModelBaseURL points it at compatible servers and proxies.
type openaiAgent struct {
	client openai.Client
	model  string
	tools  []Tool
	logger *slog.Logger
}

func newOpenAIAgent(cfg Config, tools []Tool, logger *slog.Logger) (*openaiAgent, error) {
	if strings.TrimSpace(cfg.ModelAPIKey) == "" {
		return nil, NewError(ErrCodeModelConfig, "model API configuration error - please check API key")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.ModelAPIKey)}
	if base := strings.TrimSpace(cfg.ModelBaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openaiAgent{
		client: openai.NewClient(opts...),
		model:  model,
		tools:  tools,
		logger: logger,
	}, nil
}

func (a *openaiAgent) Reply(ctx context.Context, message string) (*AgentReply, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Temperature: openai.Float(0.1),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(agentSystemPrompt),
			openai.UserMessage(message),
		},
		Tools: a.toolParams(),
	}

	var records []ToolCallRecord
	for round := 0; round < maxToolRounds; round++ {
		completion, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, a.classify(err)
		}
		if len(completion.Choices) == 0 {
			return nil, NewError(ErrCodeInternal, "model returned no choices")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return &AgentReply{Content: strings.TrimSpace(msg.Content), ToolCalls: records}, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			name := call.Function.Name
			tool := findTool(a.tools, name)

			var input, output string
			if tool == nil {
				output = toolJSON(map[string]any{"error": "unknown tool: " + name})
			} else {
				input = toolArgument(call.Function.Arguments, tool.InputName)
				output = tool.Call(ctx, input)
			}

			a.logger.Debug("tool invoked", "tool", name, "round", round)
			records = append(records, ToolCallRecord{Tool: name, Input: input, Output: output})
			params.Messages = append(params.Messages, openai.ToolMessage(output, call.ID))
		}
	}

	return nil, NewError(ErrCodeInternal, "tool call limit exceeded without a final answer")
}

func (a *openaiAgent) toolParams() []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(a.tools))
	for _, tool := range a.tools {
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						tool.InputName: map[string]any{
							"type":        "string",
							"description": tool.InputHint,
						},
					},
					"required": []string{tool.InputName},
				},
			},
		})
	}
	return params
}

func (a *openaiAgent) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return modelErrorFromStatus(apiErr.StatusCode, err)
	}
	return classifyModelError(err)
}
