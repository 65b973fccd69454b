package chainmate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiAgent drives the Gemini API natively with function declarations.
// The client is built per turn; it is a thin wrapper over an HTTP client
// and needs the request context at construction.
type geminiAgent struct {
	apiKey  string
	baseURL string
	model   string
	tools   []Tool
	logger  *slog.Logger
}

func newGeminiAgent(cfg Config, tools []Tool, logger *slog.Logger) (*geminiAgent, error) {
	if strings.TrimSpace(cfg.ModelAPIKey) == "" {
		return nil, NewError(ErrCodeModelConfig, "model API configuration error - please check API key")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiAgent{
		apiKey:  strings.TrimSpace(cfg.ModelAPIKey),
		baseURL: strings.TrimSpace(cfg.ModelBaseURL),
		model:   model,
		tools:   tools,
		logger:  logger,
	}, nil
}

func (a *geminiAgent) Reply(ctx context.Context, message string) (*AgentReply, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  a.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if a.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: a.baseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, WrapError(ErrCodeModelConfig, "create gemini client failed", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: agentSystemPrompt}},
		},
		Temperature: genai.Ptr(float32(0.1)),
		Tools:       []*genai.Tool{{FunctionDeclarations: a.declarations()}},
	}
	contents := []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)}

	var records []ToolCallRecord
	for round := 0; round < maxToolRounds; round++ {
		response, err := client.Models.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return nil, a.classify(err)
		}

		calls := response.FunctionCalls()
		if len(calls) == 0 {
			return &AgentReply{Content: strings.TrimSpace(response.Text()), ToolCalls: records}, nil
		}

		if len(response.Candidates) > 0 && response.Candidates[0].Content != nil {
			contents = append(contents, response.Candidates[0].Content)
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			tool := findTool(a.tools, call.Name)

			var input, output string
			if tool == nil {
				output = toolJSON(map[string]any{"error": "unknown tool: " + call.Name})
			} else {
				input = functionCallArgument(call.Args, tool.InputName)
				output = tool.Call(ctx, input)
			}

			a.logger.Debug("tool invoked", "tool", call.Name, "round", round)
			records = append(records, ToolCallRecord{Tool: call.Name, Input: input, Output: output})
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, map[string]any{"output": output}))
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	}

	return nil, NewError(ErrCodeInternal, "tool call limit exceeded without a final answer")
}

func (a *geminiAgent) declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(a.tools))
	for _, tool := range a.tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					tool.InputName: {
						Type:        genai.TypeString,
						Description: tool.InputHint,
					},
				},
				Required: []string{tool.InputName},
			},
		})
	}
	return decls
}

// functionCallArgument pulls the declared string argument out of a native
// function call's argument map.
func functionCallArgument(args map[string]any, inputName string) string {
	if value, ok := args[inputName].(string); ok {
		return value
	}
	for _, value := range args {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

func (a *geminiAgent) classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return modelErrorFromStatus(apiErr.Code, err)
	}
	return classifyModelError(err)
}
