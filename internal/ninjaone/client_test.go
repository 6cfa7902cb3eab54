package ninjaone

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/rmmkit/internal/script/model"
)

const scriptListJSON = `[
  {
    "id": 11,
    "name": "Speedtest",
    "description": "Runs a speed test.",
    "language": "POWERSHELL",
    "operatingSystems": ["WINDOWS"],
    "architecture": ["X64"],
    "scriptVariables": [
      {"id": 5, "name": "ServerId", "type": "INTEGER", "required": true, "defaultValue": 1234},
      {"id": 6, "name": "Label", "type": "TEXT", "defaultValue": "office"},
      {"id": 7, "name": "Upload", "type": "CHECKBOX", "defaultValue": true},
      {"id": 8, "name": "Note", "type": "TEXT", "defaultValue": null}
    ]
  }
]`

type fakeAPI struct {
	tokenStatus int
	listStatus  int
	writeStatus int
	// truncate announces a longer body than is sent on writes.
	truncate bool

	tokenCalls atomic.Int32
	lastMethod string
	lastPath   string
	lastBody   []byte
	lastAuth   string
	form       map[string]string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		_ = r.ParseForm()
		f.form = map[string]string{
			"grant_type":    r.PostForm.Get("grant_type"),
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"scope":         r.PostForm.Get("scope"),
		}
		if f.tokenStatus != 0 && f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v2/automation/scripts", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		switch r.Method {
		case http.MethodGet:
			if f.listStatus != 0 && f.listStatus != http.StatusOK {
				w.WriteHeader(f.listStatus)
				_, _ = w.Write([]byte("boom"))
				return
			}
			_, _ = w.Write([]byte(scriptListJSON))
		case http.MethodPost:
			f.writeResponse(w, `{"id": 99, "name": "New"}`)
		}
	})
	mux.HandleFunc("/v2/automation/scripts/11", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.writeResponse(w, "")
	})
	return mux
}

func (f *fakeAPI) record(r *http.Request) {
	f.lastMethod = r.Method
	f.lastPath = r.URL.Path
	f.lastAuth = r.Header.Get("Authorization")
	f.lastBody, _ = io.ReadAll(r.Body)
}

func (f *fakeAPI) writeResponse(w http.ResponseWriter, body string) {
	status := f.writeStatus
	if status == 0 {
		status = http.StatusOK
	}
	if f.truncate {
		w.Header().Set("Content-Length", "1024")
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	return NewClient(Options{
		InstanceURL:  srv.URL + "/",
		ClientID:     "client",
		ClientSecret: "secret",
		Scopes:       []string{"monitoring", "management", "control"},
		HTTPClient:   srv.Client(),
	})
}

func TestClient_Authenticate(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	require.NoError(t, c.Authenticate(context.Background()))

	assert.Equal(t, "client_credentials", api.form["grant_type"])
	assert.Equal(t, "client", api.form["client_id"])
	assert.Equal(t, "secret", api.form["client_secret"])
	assert.Equal(t, "monitoring management control", api.form["scope"])
}

func TestClient_AuthenticateFailure(t *testing.T) {
	api := &fakeAPI{tokenStatus: http.StatusUnauthorized}
	c := newTestClient(t, api)

	err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorAuthFailed))

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusUnauthorized, ce.StatusCode)
}

func TestClient_ListScripts(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	scripts, err := c.ListScripts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", api.lastAuth)
	assert.Equal(t, int32(1), api.tokenCalls.Load())

	require.Len(t, scripts, 1)
	s := scripts[0]
	assert.Equal(t, int64(11), s.ID)
	assert.Equal(t, "Speedtest", s.Name)
	assert.Equal(t, []string{"WINDOWS"}, s.OperatingSystems)
	require.Len(t, s.Variables, 4)

	params := s.Parameters()
	require.NotNil(t, params[0].Default)
	assert.Equal(t, "1234", *params[0].Default)
	assert.True(t, params[0].Required)
	assert.Equal(t, "office", *params[1].Default)
	assert.Equal(t, "true", *params[2].Default)
	assert.Nil(t, params[3].Default)

	// The token is reused for subsequent calls.
	_, err = c.ListScripts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.tokenCalls.Load())
}

func TestClient_ListScriptsFailure(t *testing.T) {
	api := &fakeAPI{listStatus: http.StatusInternalServerError}
	c := newTestClient(t, api)

	_, err := c.ListScripts(context.Background())
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorFetchFailed))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_ListScriptsStopsOnAuthFailure(t *testing.T) {
	api := &fakeAPI{tokenStatus: http.StatusForbidden}
	c := newTestClient(t, api)

	_, err := c.ListScripts(context.Background())
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorAuthFailed))
	assert.Empty(t, api.lastPath, "script list must not be requested without a token")
}

func TestClient_CreateAndUpdate(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(t, api)

	payload := model.ScriptPayload{
		Name:        "New",
		Description: "desc",
		ScriptConfig: model.ScriptConfig{
			Language: model.LanguagePowerShell,
			Text:     "Write-Output 1",
		},
		Variables: []model.ParameterSpec{{Name: "A", Type: model.VarTypeText, Source: model.VarSourceLiteral}},
	}

	created, err := c.CreateScript(context.Background(), payload)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, http.MethodPost, api.lastMethod)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(api.lastBody, &sent))
	assert.Equal(t, "New", sent["name"])
	assert.Equal(t, "POWERSHELL", sent["scriptConfig"].(map[string]interface{})["scriptLanguage"])
	assert.NotContains(t, sent, "operatingSystems")

	api.writeStatus = http.StatusNoContent
	updated, err := c.UpdateScript(context.Background(), 11, payload)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Equal(t, http.MethodPut, api.lastMethod)
	assert.Equal(t, "/v2/automation/scripts/11", api.lastPath)
}

func TestClient_UpdateRejected(t *testing.T) {
	api := &fakeAPI{writeStatus: http.StatusBadRequest}
	c := newTestClient(t, api)

	_, err := c.UpdateScript(context.Background(), 11, model.ScriptPayload{Name: "x"})
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorSyncFailed))
}

func TestClient_WriteResponseReadFailure(t *testing.T) {
	api := &fakeAPI{writeStatus: http.StatusBadRequest, truncate: true}
	c := newTestClient(t, api)

	_, err := c.UpdateScript(context.Background(), 11, model.ScriptPayload{Name: "x"})
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorSyncFailed))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "failed to read response")
}
