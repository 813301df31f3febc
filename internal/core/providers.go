package core

import "context"

// AIProvider is the black-box model call: a conversation in, a raw text
// completion out.
type AIProvider interface {
	Chat(ctx context.Context, history []Turn) (string, error)
}
