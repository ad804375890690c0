package service

import (
	"fmt"
	"strings"

	"github.com/papertrade/stock-trading-backend/internal/model"
)

// systemPrompt is the base instruction for the assistant. Per-user context is
// appended by buildSystemPrompt.
const systemPrompt = `You are StockBot, an educational assistant for a stock trading demo application.

Your role is to:
- Explain stock market concepts, terminology, and trading basics
- Help users understand their portfolio and trades
- Answer questions about stocks in the database
- Provide educational information about investing

You must NOT:
- Give personalized investment advice or recommendations
- Predict stock prices or market movements
- Recommend specific stocks to buy or sell
- Provide financial planning or tax advice

Always remind users that this is a demo application for educational purposes only.
If asked for investment advice, politely decline and suggest consulting a licensed financial advisor.

Be friendly, concise, and educational in your responses.`

// safetyReply is returned without calling the model when the safety filter
// matches the user's message.
const safetyReply = "I can't provide personalized investment advice or stock recommendations. " +
	"However, I'd be happy to explain stock concepts, help you understand " +
	"your portfolio, or answer educational questions about investing!"

// safetyKeywords flag messages asking for the advice the assistant must not give.
var safetyKeywords = []string{
	"should i buy",
	"should i sell",
	"is it a good time",
	"what stock should",
	"recommend a stock",
	"best stock to buy",
	"guarantee",
	"sure thing",
	"can't lose",
}

// Fallback replies used when the model cannot answer.
const (
	fallbackUnconfigured = "I'm sorry, but the AI chatbot is not configured properly. " +
		"Please contact the administrator to set up the API key."
	fallbackGeneral = "I'm sorry, but I'm having trouble processing your request right now. " +
		"Please try again later or contact support if the issue persists."
)

// checkSafetyFilter reports whether the message trips the advice filter.
func checkSafetyFilter(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range safetyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// chatContext is the per-user data injected into the system prompt.
type chatContext struct {
	stocks       []model.Stock
	recentTrades []model.Trade
	portfolio    model.Portfolio
}

// buildSystemPrompt renders the system prompt, appending the user's portfolio,
// the stock catalog and their recent trades when available. List lengths are
// capped to keep the prompt small.
func buildSystemPrompt(uc *chatContext) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if uc == nil {
		return b.String()
	}

	b.WriteString("\n\n--- User Context ---")

	if len(uc.portfolio.Positions) > 0 {
		fmt.Fprintf(&b, "\nUser's Portfolio Summary:")
		fmt.Fprintf(&b, "\n- Total Portfolio Value: $%s", uc.portfolio.Summary.TotalValue.StringFixed(2))
		fmt.Fprintf(&b, "\n- Number of Holdings: %d", len(uc.portfolio.Positions))

		b.WriteString("\n\nCurrent Holdings:")
		for _, p := range capped(uc.portfolio.Positions, 5) {
			fmt.Fprintf(&b, "\n  - %s: %d shares @ $%s (Current: $%s)",
				p.Ticker, p.Shares, p.AvgPrice.StringFixed(2), p.CurrentPrice.StringFixed(2))
		}
	}

	if len(uc.stocks) > 0 {
		fmt.Fprintf(&b, "\n\nAvailable Stocks in Database (%d total):", len(uc.stocks))
		for _, s := range capped(uc.stocks, 10) {
			fmt.Fprintf(&b, "\n  - %s - %s ($%s) - %s",
				s.Ticker, s.Name, s.Price.StringFixed(2), s.Sector)
		}
	}

	if len(uc.recentTrades) > 0 {
		fmt.Fprintf(&b, "\n\nUser's Recent Trades (%d total):", len(uc.recentTrades))
		for _, t := range capped(uc.recentTrades, 5) {
			fmt.Fprintf(&b, "\n  - %s %d %s @ $%s on %s",
				strings.ToUpper(t.Side), t.Quantity, t.Ticker,
				t.Price.StringFixed(2), t.Timestamp.Format("2006-01-02 15:04"))
		}
	}

	return b.String()
}

func capped[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
