package session

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// countTokens measures text against the cl100k_base encoding. When the
// encoding cannot be loaded (offline environments), a rough 4-chars-per-token
// estimate keeps windowing functional.
func countTokens(text string) int {
	tkOnce.Do(func() {
		tk, _ = tiktoken.GetEncoding("cl100k_base")
	})
	if tk == nil {
		return len(text) / 4
	}
	return len(tk.Encode(text, nil, nil))
}
