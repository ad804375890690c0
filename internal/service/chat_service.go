package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// History and prompt size limits.
const (
	// MaxMessageLength caps a single user message.
	MaxMessageLength = 1000
	// historyReplayLimit is how many prior turns the model sees.
	historyReplayLimit = 10
	// historyPageLimit caps the history endpoint.
	historyPageLimit = 50
)

// ChatResult is the outcome of one assistant exchange.
type ChatResult struct {
	Response  string    `json:"response"`
	Success   bool      `json:"success"`
	Filtered  bool      `json:"filtered,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatService runs the assistant conversation flow: safety filtering, context
// gathering, model invocation and persistence of both turns.
type ChatService struct {
	chatRepo     *repository.ChatRepository
	stockRepo    *repository.StockRepository
	tradeRepo    *repository.TradeRepository
	portfolioSvc *PortfolioService
	responder    Responder
}

// NewChatService creates a new ChatService. responder may be nil, in which
// case every exchange answers with the not-configured fallback.
func NewChatService(
	chatRepo *repository.ChatRepository,
	stockRepo *repository.StockRepository,
	tradeRepo *repository.TradeRepository,
	portfolioSvc *PortfolioService,
	responder Responder,
) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		stockRepo:    stockRepo,
		tradeRepo:    tradeRepo,
		portfolioSvc: portfolioSvc,
		responder:    responder,
	}
}

// SendMessage runs one exchange. userID is empty for anonymous sessions; when
// present, the user's catalog, trades and portfolio are injected into the
// system prompt. Both the user message and the reply are persisted, fallback
// replies included, so history always reflects what the user saw.
func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID, message string) (ChatResult, error) {
	result := s.respond(ctx, userID, sessionID, message)

	now := time.Now().UTC()
	userMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      model.ChatRoleUser,
		Content:   message,
		Timestamp: now,
	}
	assistantMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      model.ChatRoleAssistant,
		Content:   result.Response,
		Timestamp: now.Add(time.Millisecond),
	}

	if err := s.chatRepo.CreateMessage(userMsg); err != nil {
		return ChatResult{}, err
	}
	if err := s.chatRepo.CreateMessage(assistantMsg); err != nil {
		return ChatResult{}, err
	}

	result.Timestamp = assistantMsg.Timestamp
	return result, nil
}

// respond decides what the assistant answers, without touching persistence.
func (s *ChatService) respond(ctx context.Context, userID, sessionID, message string) ChatResult {
	if checkSafetyFilter(message) {
		return ChatResult{Response: safetyReply, Success: true, Filtered: true}
	}

	if s.responder == nil {
		return ChatResult{Response: fallbackUnconfigured, Success: false}
	}

	history, err := s.chatRepo.GetRecentMessages(sessionID, historyReplayLimit)
	if err != nil {
		log.Printf("chat history load failed: %v", err)
		return ChatResult{Response: fallbackGeneral, Success: false}
	}

	var uc *chatContext
	if userID != "" {
		uc, err = s.gatherContext(ctx, userID)
		if err != nil {
			log.Printf("chat context build failed: %v", err)
			return ChatResult{Response: fallbackGeneral, Success: false}
		}
	}

	reply, err := s.responder.Respond(ctx, buildSystemPrompt(uc), history, message)
	if err != nil {
		log.Printf("chat model call failed: %v", err)
		return ChatResult{Response: fallbackGeneral, Success: false}
	}

	return ChatResult{Response: reply, Success: true}
}

// gatherContext loads the catalog, recent trades and portfolio concurrently.
func (s *ChatService) gatherContext(ctx context.Context, userID string) (*chatContext, error) {
	uc := &chatContext{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		uc.stocks, err = s.stockRepo.GetAllStocks(0)
		return err
	})
	g.Go(func() error {
		var err error
		uc.recentTrades, err = s.tradeRepo.GetRecentTrades(userID, 10)
		return err
	})
	g.Go(func() error {
		var err error
		uc.portfolio, err = s.portfolioSvc.GetPortfolio(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uc, nil
}

// History retrieves the current session's conversation in chronological order.
func (s *ChatService) History(sessionID string) ([]model.ChatMessage, error) {
	if sessionID == "" {
		return []model.ChatMessage{}, nil
	}
	messages, err := s.chatRepo.GetSessionMessages(sessionID, historyPageLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveMessages, err)
	}
	return messages, nil
}

// NewSession issues a fresh session ID. Clearing a conversation just rotates
// the session; old rows stay behind, unreachable from the new session.
func (s *ChatService) NewSession() string {
	return uuid.New().String()
}
