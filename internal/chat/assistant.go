// Package chat holds the shop assistant transcript and the flow around the
// remote question/answer endpoint. The transcript is append-only, lives in
// memory for the running session only, and never fails visibly: any remote
// problem turns into a fixed apology from the bot.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/logging"
)

// Storefront copy for the assistant panel.
const (
	Greeting = "Hai! Ceritakan masalah kulitmu (jerawat, kusam, kering, berminyak)."
	Apology  = "Maaf, terjadi kendala."
)

// Asker is the remote assistant surface. *api.Client satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Assistant keeps the transcript and talks to the remote assistant.
type Assistant struct {
	api Asker
	log *logging.Logger

	mu       sync.Mutex
	messages []domain.ChatMessage
}

// New creates an assistant with the greeting already in the transcript.
func New(api Asker) *Assistant {
	a := &Assistant{
		api: api,
		log: logging.New("chat"),
	}
	a.messages = []domain.ChatMessage{botMessage(Greeting)}
	return a
}

// Messages returns a copy of the transcript in order.
func (a *Assistant) Messages() []domain.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ChatMessage(nil), a.messages...)
}

// Ask appends the user's question, forwards it, and appends the answer.
// Blank questions are ignored. A remote failure appends the apology instead
// of surfacing an error; retrying the question is always safe.
func (a *Assistant) Ask(ctx context.Context, question string) domain.ChatMessage {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ChatMessage{}
	}

	a.append(domain.ChatMessage{ID: newID(), Role: domain.RoleUser, Text: question})

	answer, err := a.api.Ask(ctx, question)
	if err != nil {
		a.log.Warn("ask_failed", nil, err)
		answer = Apology
	}

	reply := botMessage(answer)
	a.append(reply)
	return reply
}

func (a *Assistant) append(msg domain.ChatMessage) {
	a.mu.Lock()
	a.messages = append(a.messages, msg)
	a.mu.Unlock()
}

func botMessage(text string) domain.ChatMessage {
	return domain.ChatMessage{ID: newID(), Role: domain.RoleBot, Text: text}
}

func newID() string {
	return ulid.Make().String()
}
