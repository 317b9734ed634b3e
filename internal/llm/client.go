package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client extracts structured data from free text with a language model.
type Client interface {
	// Extract returns the model's JSON object for input, shaped by schema.
	Extract(ctx context.Context, schema ExtractionSchema, input string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Extract constrains the model to JSON matching schema. The schema description
// becomes the system instruction and the prompt carries the field list and rules.
func (c *GeminiClient) Extract(ctx context.Context, schema ExtractionSchema, input string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = ResponseSchema(schema)
	if schema.Description != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(schema.Description))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(BuildExtractionPrompt(schema, input)))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", schema.Name, err)
	}

	text, err := textOf(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ResponseSchema converts an extraction schema to a Gemini response schema.
// Optional fields are nullable so the model can leave unknown values out.
func ResponseSchema(schema ExtractionSchema) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(schema.Fields)),
	}
	for _, field := range schema.Fields {
		prop := &genai.Schema{
			Type:        field.Kind.genaiType(),
			Description: field.Description,
			Nullable:    !field.Required,
		}
		out.Properties[field.Name] = prop
		if field.Required {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out
}

func (k FieldKind) genaiType() genai.Type {
	switch k {
	case KindNumber:
		return genai.TypeNumber
	case KindInteger:
		return genai.TypeInteger
	case KindBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// textOf joins the text parts of the first candidate.
func textOf(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response (finish reason %s)", candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}
