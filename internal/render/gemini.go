package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "models/gemini-2.5-flash-image-preview"

// Generator produces a rendered image from a prompt and an input image.
// It returns either inline image bytes or a remote URL to fetch.
type Generator interface {
	Generate(ctx context.Context, prompt, mimeType string, image []byte) (data []byte, remoteURL string, err error)
}

// GeminiGenerator invokes the Gemini image model through the genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the generator. Credentials come from the
// environment (GEMINI_API_KEY / application default credentials).
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt, mimeType string, image []byte) ([]byte, string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, "", err
	}

	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		var textOut strings.Builder
		for _, part := range res.Candidates[0].Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, "", nil
			}
			if part.FileData != nil && part.FileData.FileURI != "" {
				return nil, part.FileData.FileURI, nil
			}
			if part.Text != "" {
				textOut.WriteString(part.Text)
			}
		}
		if s := strings.TrimSpace(textOut.String()); s != "" {
			if len(s) > 512 {
				s = s[:512] + "..."
			}
			return nil, "", fmt.Errorf("no image returned by model: %s", s)
		}
	}

	return nil, "", errors.New("no image returned by model")
}
