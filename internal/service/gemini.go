package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/papertrade/stock-trading-backend/internal/model"
)

// Responder produces one assistant reply given the system instruction, the
// conversation so far and the new user message. A nil Responder means the
// assistant is not configured and the chat service falls back to canned
// replies.
type Responder interface {
	Respond(ctx context.Context, system string, history []model.ChatMessage, message string) (string, error)
}

// GeminiResponder answers through the Gemini API.
type GeminiResponder struct {
	client    *genai.Client
	modelName string
}

// NewGeminiResponder creates a Gemini-backed Responder.
func NewGeminiResponder(ctx context.Context, apiKey, modelName string) (*GeminiResponder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiResponder{client: client, modelName: modelName}, nil
}

// Respond replays the conversation history into a fresh chat session and
// sends the new message.
func (g *GeminiResponder) Respond(ctx context.Context, system string, history []model.ChatMessage, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}

	var contents []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Role == model.ChatRoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	chat, err := g.client.Chats.Create(ctx, g.modelName, config, contents)
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
