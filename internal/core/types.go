package core

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single transcript entry. Turns are immutable once appended.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Contact is one append-only row of the contact log. Identical rows may
// repeat: every successful extraction is recorded, never overwritten.
type Contact struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// ChatResult is the assembled response for one /chat request. Latency covers
// the extraction step only (model call or fast-path lookup), in seconds.
type ChatResult struct {
	Latency  float64           `json:"latency"`
	UserID   string            `json:"user_id"`
	AIOutput string            `json:"AI_output"`
	History  []string          `json:"history"`
	Entities map[string]string `json:"entities,omitempty"`
}
