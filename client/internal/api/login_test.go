package api_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitlog/fitlog/client/internal/api"
)

func TestClassifyLogin(t *testing.T) {
	unreachable := api.Response{Err: api.ErrNetworkUnavailable}

	tests := []struct {
		name             string
		resp             api.Response
		expectedKind     api.LoginKind
		expectedUsername string
		lenientKind      api.LoginKind
	}{
		{
			name:             "2xx с username в теле",
			resp:             api.Response{OK: true, Status: 200, Data: map[string]any{"ok": true, "username": "Alice"}},
			expectedKind:     api.LoginAccepted,
			expectedUsername: "Alice",
			lenientKind:      api.LoginAccepted,
		},
		{
			name:             "2xx без username берет введенное имя",
			resp:             api.Response{OK: true, Status: 204},
			expectedKind:     api.LoginAccepted,
			expectedUsername: "alice",
			lenientKind:      api.LoginAccepted,
		},
		{
			name:         "401 отказ",
			resp:         api.Response{Status: 401, Data: "invalid credentials"},
			expectedKind: api.LoginRejected,
			lenientKind:  api.LoginRejected,
		},
		{
			name:         "Тело ошибки с username засчитывается только в совместимом режиме",
			resp:         api.Response{Status: 400, Data: map[string]any{"username": "alice", "error": "bad"}},
			expectedKind: api.LoginRejected,
			lenientKind:  api.LoginAccepted,
		},
		{
			name:         "ok=true при статусе 500",
			resp:         api.Response{Status: 500, Data: map[string]any{"ok": true}},
			expectedKind: api.LoginRejected,
			lenientKind:  api.LoginAccepted,
		},
		{
			name:         "Сервер недоступен",
			resp:         unreachable,
			expectedKind: api.LoginUnreachable,
			lenientKind:  api.LoginUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := api.ClassifyLogin(tt.resp, "alice")
			assert.Equal(t, tt.expectedKind, outcome.Kind, "строгий режим")
			assert.Equal(t, tt.expectedUsername, outcome.Username)
			assert.Equal(t, tt.expectedKind == api.LoginAccepted, outcome.Accepted())

			lenient := api.ClassifyLoginLenient(tt.resp, "alice")
			assert.Equal(t, tt.lenientKind, lenient.Kind, "совместимый режим")
		})
	}
}

func TestClassifyLogin_UnreachableKeepsError(t *testing.T) {
	outcome := api.ClassifyLogin(api.Response{Err: api.ErrNetworkUnavailable}, "alice")
	assert.True(t, errors.Is(outcome.Err, api.ErrNetworkUnavailable))
	assert.Equal(t, "unreachable", outcome.Kind.String())
}
