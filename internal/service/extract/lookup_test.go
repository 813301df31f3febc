package extract

import "testing"

func TestLookupQuery(t *testing.T) {
	keywords := []string{"number", "phone"}

	tests := []struct {
		name      string
		message   string
		wantQuery string
		wantOK    bool
	}{
		{
			name:      "possessive_lookup",
			message:   "What is Sara's number?",
			wantQuery: "Sara",
			wantOK:    true,
		},
		{
			name:      "full_name_lookup",
			message:   "what's Ahmed Ali's number",
			wantQuery: "Ahmed Ali",
			wantOK:    true,
		},
		{
			name:      "phone_keyword",
			message:   "Give me Ahmed Ali's phone",
			wantQuery: "Ahmed Ali",
			wantOK:    true,
		},
		{
			name:    "no_keyword",
			message: "Call Sara for me",
			wantOK:  false,
		},
		{
			name:    "keyword_without_name",
			message: "give me the number",
			wantOK:  false,
		},
		{
			name:    "plain_statement",
			message: "no contact info here",
			wantOK:  false,
		},
		{
			name:      "capitalized_keyword_excluded",
			message:   "Sara Connor's Number please",
			wantQuery: "Sara Connor",
			wantOK:    true,
		},
		{
			name:      "prefers_non_initial_run",
			message:   "Do you have Sara's phone",
			wantQuery: "Sara",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := lookupQuery(tt.message, keywords)
			if ok != tt.wantOK {
				t.Fatalf("lookupQuery(%q) ok = %v, want %v", tt.message, ok, tt.wantOK)
			}
			if ok && query != tt.wantQuery {
				t.Errorf("lookupQuery(%q) = %q, want %q", tt.message, query, tt.wantQuery)
			}
		})
	}
}
