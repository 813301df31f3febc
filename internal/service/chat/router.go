package chat

import (
	"context"

	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/internal/service/extract"
	"github.com/mostafamoumen/contactchat/internal/service/session"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

// Router orchestrates one chat request: acquire the user's session, run the
// extraction policy under the per-user lock, assemble the response.
type Router struct {
	sessions *session.Manager
	policy   *extract.Policy
}

func NewRouter(sessions *session.Manager, policy *extract.Policy) *Router {
	return &Router{
		sessions: sessions,
		policy:   policy,
	}
}

func (r *Router) Handle(ctx context.Context, userID, message string) (core.ChatResult, error) {
	sess, release, err := r.sessions.Acquire(ctx, userID)
	if err != nil {
		return core.ChatResult{}, err
	}
	defer release()

	outcome, err := r.policy.Handle(ctx, userID, message, sess.Memory)
	if err != nil {
		return core.ChatResult{}, err
	}

	transcript, entities := sess.Memory.Snapshot()
	history := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		history = append(history, turn.Content)
	}

	log.FromCtx(ctx).Info().
		Str("user_id", userID).
		Bool("fast_path", outcome.FastPath).
		Dur("latency", outcome.Latency).
		Msg("chat handled")

	return core.ChatResult{
		Latency:  outcome.Latency.Seconds(),
		UserID:   userID,
		AIOutput: outcome.Answer,
		History:  history,
		Entities: entities,
	}, nil
}
