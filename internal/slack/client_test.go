package slack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	c := New("testspace", "xoxs-secret")
	c.baseURL = serverURL
	return c
}

func TestClient_FetchAll(t *testing.T) {
	var calls []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		calls = append(calls, map[string]string{
			"page":  r.FormValue("page"),
			"count": r.FormValue("count"),
			"token": r.FormValue("token"),
		})

		if len(calls) == 1 {
			w.Write([]byte(`{
				"ok": true,
				"custom_emoji_total_count": 3,
				"paging": {"count": 1, "pages": 3},
				"emoji": [{"name": "probe", "created": 1}]
			}`))
			return
		}
		w.Write([]byte(`{
			"ok": true,
			"custom_emoji_total_count": 3,
			"paging": {"count": 3},
			"emoji": [
				{"name": "late", "created": 300, "url": "https://cdn.example.com/late.png"},
				{"name": "early", "created": 100, "url": "https://cdn.example.com/early.gif"},
				{"name": "mid", "created": 200, "url": "https://cdn.example.com/mid.png", "team_id": "T123"}
			]
		}`))
	}))
	defer server.Close()

	list, err := testClient(server.URL).FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, calls, 2)
	require.Equal(t, map[string]string{"page": "1", "count": "1", "token": "xoxs-secret"}, calls[0])
	require.Equal(t, map[string]string{"page": "1", "count": "3", "token": "xoxs-secret"}, calls[1])

	require.Len(t, list, 3)
	require.Equal(t, "early", list[0].Name)
	require.Equal(t, "mid", list[1].Name)
	require.Equal(t, "late", list[2].Name)
	require.JSONEq(t, `"T123"`, string(list[1].Extra["team_id"]))
}

func TestClient_FetchAll_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "not_allowed_token_type"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchAll(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.JSONEq(t, `"not_allowed_token_type"`, string(apiErr.Fields["error"]))
	require.Contains(t, apiErr.Error(), "not_allowed_token_type")
}

func TestClient_FetchAll_APIErrorOnSecondCall(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"ok": true, "custom_emoji_total_count": 9000, "paging": {"count": 1}, "emoji": []}`))
			return
		}
		w.Write([]byte(`{"ok": false, "error": "ratelimited"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchAll(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 2, calls)
}

func TestClient_FetchAll_TransportError(t *testing.T) {
	t.Run("Bad Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := testClient(server.URL).FetchAll(context.Background())

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		require.Equal(t, http.StatusBadGateway, transportErr.Status)
	})

	t.Run("Connection Refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing is listening anymore

		_, err := testClient(server.URL).FetchAll(context.Background())

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		require.NotNil(t, errors.Unwrap(transportErr))
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer server.Close()

		_, err := testClient(server.URL).FetchAll(context.Background())

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}
