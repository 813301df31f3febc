package session

import (
	"github.com/mostafamoumen/contactchat/internal/core"
)

// Strategy is per-user conversational memory. Implementations are not safe
// for concurrent use on their own; the Manager serializes access per user.
type Strategy interface {
	// AppendTurn records a turn. The transcript is append-only.
	AppendTurn(role, content string)
	// RecordEntity updates the name → phone index after a successful
	// extraction. A no-op for strategies without an entity index.
	RecordEntity(name, phoneNumber string)
	// Render returns the context window fed into the next model call.
	Render() []core.Turn
	// Snapshot returns the full transcript and the entity index (nil when
	// the strategy keeps none).
	Snapshot() ([]core.Turn, map[string]string)
}

// Window bounds how much of the transcript is rendered into a model call.
// The stored transcript itself is never truncated.
type Window struct {
	Turns       int
	TokenBudget int
}

// Buffer is the plain-transcript strategy: full history kept, the last
// Window.Turns rendered verbatim, oldest dropped first when over budget.
type Buffer struct {
	window     Window
	transcript []core.Turn
}

func NewBuffer(window Window) *Buffer {
	return &Buffer{window: window}
}

func (b *Buffer) AppendTurn(role, content string) {
	b.transcript = append(b.transcript, core.Turn{Role: role, Content: content})
}

func (b *Buffer) RecordEntity(name, phoneNumber string) {}

func (b *Buffer) Render() []core.Turn {
	return windowTurns(b.transcript, b.window)
}

func (b *Buffer) Snapshot() ([]core.Turn, map[string]string) {
	transcript := make([]core.Turn, len(b.transcript))
	copy(transcript, b.transcript)
	return transcript, nil
}

// windowTurns keeps the most recent turns, bounded first by count and then
// by token budget, preserving order.
func windowTurns(transcript []core.Turn, window Window) []core.Turn {
	turns := transcript
	if window.Turns > 0 && len(turns) > window.Turns {
		turns = turns[len(turns)-window.Turns:]
	}

	if window.TokenBudget > 0 {
		total := 0
		for _, turn := range turns {
			total += countTokens(turn.Content)
		}
		for total > window.TokenBudget && len(turns) > 1 {
			total -= countTokens(turns[0].Content)
			turns = turns[1:]
		}
	}

	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out
}
