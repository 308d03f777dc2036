package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	describePrompt  = "On the topic of %s, introduce %s in five plain sentences covering who they are, what they are known for and their achievements."
	recommendPrompt = "Based on the following text, list ten representative song titles. Output only the titles.\n\n%s"
)

// GeminiDescriber calls the Gemini API once per request.
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

func NewGeminiDescriber(ctx context.Context, apiKey, model string) (*GeminiDescriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiDescriber{client: client, model: model}, nil
}

func (g *GeminiDescriber) Describe(ctx context.Context, topic, subject string) (string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(describePrompt, topic, subject), &genai.Schema{
		Type: genai.TypeString,
	})
	if err != nil {
		return "", err
	}
	return decodeString(text), nil
}

func (g *GeminiDescriber) Recommend(ctx context.Context, description string) ([]string, error) {
	text, err := g.generate(ctx, fmt.Sprintf(recommendPrompt, description), &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	})
	if err != nil {
		return nil, err
	}
	return decodeList(text)
}

func (g *GeminiDescriber) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini %s: empty response", g.model)
	}
	return text, nil
}

// decodeString unwraps a JSON string response, falling back to the raw text.
func decodeString(text string) string {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return strings.TrimSpace(s)
	}
	return text
}

func decodeList(text string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
