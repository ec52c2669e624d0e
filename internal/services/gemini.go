// Gemini implementation of [Commentator]
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotcheck/internal/shared"
	"google.golang.org/genai"
)

// defaultGeminiModel balances quality and latency for one-sentence commentary.
const defaultGeminiModel = "gemini-2.0-flash"

// GeminiService implements [Commentator] using Google's Gemini API.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService creates a Gemini-backed commentator.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing gemini api_key", shared.ErrMissingCredentials)
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{client: client, model: model}, nil
}

// Comment generates roast or toast commentary on the listener's taste.
//
// The generated text is returned verbatim, rendering is the caller's concern.
func (g *GeminiService) Comment(ctx context.Context, req CommentaryRequest) (string, error) {
	prompt := BuildCommentaryPrompt(req)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", shared.ErrAPIRequest, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", shared.ErrAPIRequest)
	}

	return text, nil
}

// BuildCommentaryPrompt assembles the roast/toast prompt from the listener's top items.
//
// Pure function, exported for handler and CLI reuse.
func BuildCommentaryPrompt(req CommentaryRequest) string {
	action := "toast"
	if req.Roast {
		action = "roast"
	}

	style := req.Style
	if style == "" {
		style = "Gordon Ramsay"
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please write a one sentence %s of my music taste in the style of %s. ", action, style)
	b.WriteString("Reference a track, genre, and/or artist from the lists as part of the sentence. ")
	b.WriteString("The sentence must be complete and under 50 words. Do not use hashtags.")

	if len(req.Artists) > 0 {
		b.WriteString("\n\nMy top artists:\n")
		for i, artist := range req.Artists {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "%d. %s", i+1, artist.Name)
			if len(artist.Genres) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(artist.Genres, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(req.Tracks) > 0 {
		b.WriteString("\nMy top tracks:\n")
		for i, track := range req.Tracks {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "%d. %s by %s\n", i+1, track.Name, strings.Join(track.Artists, ", "))
		}
	}

	return b.String()
}
