package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mostafamoumen/contactchat/internal/config"
	"github.com/mostafamoumen/contactchat/internal/core"
)

type stubChat struct {
	result core.ChatResult
	err    error
}

func (s *stubChat) Handle(ctx context.Context, userID, message string) (core.ChatResult, error) {
	if s.err != nil {
		return core.ChatResult{}, s.err
	}
	res := s.result
	res.UserID = userID
	return res, nil
}

func newTestServer(chat ChatService) *Server {
	return New(&config.AppConfig{ListenAddr: ":0"}, chat)
}

func TestServer_Chat(t *testing.T) {
	srv := newTestServer(&stubChat{result: core.ChatResult{
		Latency:  0.42,
		AIOutput: `{"name":"Sara","phone_number":"01098765432"}`,
		History:  []string{"what is Sara's number", `{"name":"Sara","phone_number":"01098765432"}`},
	}})

	body := `{"message": "what is Sara's number", "user_id": "u1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res core.ChatResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "u1", res.UserID)
	require.Equal(t, 0.42, res.Latency)
	require.Contains(t, res.AIOutput, "01098765432")
	require.Len(t, res.History, 2)
	require.Nil(t, res.Entities)
}

func TestServer_ChatBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed_json", body: `{"message": `},
		{name: "missing_message", body: `{"user_id": "u1"}`},
		{name: "missing_user_id", body: `{"message": "hello"}`},
		{name: "empty_fields", body: `{"message": "", "user_id": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&stubChat{})
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServer_ChatSessionFailure(t *testing.T) {
	srv := newTestServer(&stubChat{err: fmt.Errorf("%w: out of memory", core.ErrSession)})

	body := `{"message": "hello", "user_id": "u1"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(&stubChat{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
