package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/internal/service/session"
	"github.com/mostafamoumen/contactchat/pkg/log"
	"github.com/mostafamoumen/contactchat/pkg/retry"
)

// Policy is the per-message decision procedure: answer deterministically
// from the contact log when the message looks like a lookup, otherwise ask
// the model to extract and merge the result. Failures degrade to the null
// extraction instead of surfacing to the user.
type Policy struct {
	contacts core.ContactsRepository
	ai       core.AIProvider
	retrier  *retry.Retrier
	keywords []string
}

func NewPolicy(contacts core.ContactsRepository, ai core.AIProvider, keywords []string) *Policy {
	return &Policy{
		contacts: contacts,
		ai:       ai,
		retrier:  retry.NewRetrier(retry.NewStorageConfig()),
		keywords: keywords,
	}
}

// Outcome is the result of handling one message. Latency covers only the
// extraction step (the fast-path lookup or the model call), not persistence.
type Outcome struct {
	Answer   string
	Latency  time.Duration
	FastPath bool
}

// Handle runs the policy for one message. The caller must hold the session's
// per-user lock. Memory is mutated only after the extraction step completes,
// so an aborted request leaves the session untouched.
func (p *Policy) Handle(ctx context.Context, userID, message string, mem session.Strategy) (Outcome, error) {
	if outcome, ok := p.tryFastPath(ctx, userID, message, mem); ok {
		return outcome, nil
	}
	return p.modelPath(ctx, userID, message, mem)
}

// tryFastPath resolves lookup-shaped messages straight from the contact log,
// skipping the model entirely. The freshest matching row wins.
func (p *Policy) tryFastPath(ctx context.Context, userID, message string, mem session.Strategy) (Outcome, bool) {
	query, ok := lookupQuery(message, p.keywords)
	if !ok {
		return Outcome{}, false
	}

	start := time.Now()
	matches, err := p.contacts.Search(ctx, userID, query)
	latency := time.Since(start)

	if err != nil {
		// Degrade to the model path; the lookup is an optimization.
		log.FromCtx(ctx).Warn().Err(err).Str("query", query).Msg("fast-path lookup failed")
		return Outcome{}, false
	}
	if len(matches) == 0 {
		return Outcome{}, false
	}

	top := matches[0]
	answer := Extraction{Name: &top.Name, PhoneNumber: &top.PhoneNumber}.Render()
	p.commit(mem, message, answer)

	log.FromCtx(ctx).Debug().Str("query", query).Int("matches", len(matches)).Msg("fast path hit")
	return Outcome{Answer: answer, Latency: latency, FastPath: true}, true
}

func (p *Policy) modelPath(ctx context.Context, userID, message string, mem session.Strategy) (Outcome, error) {
	logger := log.FromCtx(ctx)
	prompt := buildPrompt(mem.Render(), message)

	start := time.Now()
	raw, err := p.ai.Chat(ctx, prompt)
	latency := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			// Caller timed out or went away: abort without touching memory.
			return Outcome{}, fmt.Errorf("%w: %v", core.ErrModelInvocation, err)
		}
		// Model failures are not retried; the user can simply resend.
		logger.Error().Err(err).Msg("model invocation failed")
		answer := Extraction{}.Render()
		p.commit(mem, message, answer)
		return Outcome{Answer: answer, Latency: latency}, nil
	}

	ex, err := parseExtraction(raw)
	if err != nil {
		logger.Warn().Err(err).Str("raw", raw).Msg("model output did not match contract")
		ex = Extraction{}
	}

	answer := ex.Render()
	p.merge(ctx, userID, ex, mem)
	p.commit(mem, message, answer)

	return Outcome{Answer: answer, Latency: latency}, nil
}

// merge persists a complete extraction and updates the entity index.
// Incomplete extractions are dropped: a name-only or phone-only entry is
// ambiguous.
func (p *Policy) merge(ctx context.Context, userID string, ex Extraction, mem session.Strategy) {
	if !ex.Complete() {
		return
	}

	err := p.retrier.Do(ctx, func() error {
		return p.contacts.Save(ctx, userID, *ex.Name, *ex.PhoneNumber)
	})
	if err != nil {
		// The in-session answer still stands; only durability suffered.
		log.FromCtx(ctx).Error().Err(err).Str("name", *ex.Name).Msg("contact persistence failed")
	}

	mem.RecordEntity(*ex.Name, *ex.PhoneNumber)
}

// commit appends the exchange to the transcript. Runs for every resolved
// message regardless of path, so later turns see full history.
func (p *Policy) commit(mem session.Strategy, message, answer string) {
	mem.AppendTurn(core.RoleUser, message)
	mem.AppendTurn(core.RoleAssistant, answer)
}
