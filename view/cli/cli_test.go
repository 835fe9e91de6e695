package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type backend struct {
	url         string
	sessionFile string
}

func newBackend(t *testing.T) backend {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","role":"admin","user_id":1}`))
	})
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.Equal(t, "10", r.URL.Query().Get("skip"))
		_, _ = w.Write([]byte(`{"items":[{"id":11,"title":"Dune","author":"Frank Herbert","total_copies":2,"available_copies":1}],"total":11}`))
	})
	mux.HandleFunc("/api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend{url: srv.URL + "/api", sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

func (b backend) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append(args, "--api", b.url, "--session-file", b.sessionFile))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_GuardWithoutSession(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	_, err := b.run("books", "list")
	require.EqualError(t, err, "please log in first")

	_, err = b.run("whoami")
	require.EqualError(t, err, "please log in first")
}

func TestCLI_LoginThenList(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	out, err := b.run("login", "-e", "ann@example.com", "--password", "secret", "-o", "json")
	require.NoError(t, err)
	var login loginResult
	require.NoError(t, json.Unmarshal([]byte(out), &login))
	require.Equal(t, "/dashboard", login.Landing)

	out, err = b.run("books", "list", "--page", "2", "-o", "json")
	require.NoError(t, err)
	var page struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, "Dune", page.Items[0].Title)
	require.Equal(t, 2, page.Pagination.CurrentPage)
	require.Equal(t, 2, page.Pagination.TotalPages)

	out, err = b.run("books", "list", "--page", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Frank Herbert")
	require.Contains(t, out, "Showing 11 to 11 of 11, page 2 of 2")
}

func TestCLI_UnauthorizedEndsSession(t *testing.T) {
	t.Parallel()
	b := newBackend(t)

	_, err := b.run("login", "-e", "ann@example.com", "--password", "secret")
	require.NoError(t, err)

	_, err = b.run("dashboard")
	require.EqualError(t, err, "session expired, please log in again")

	_, err = b.run("books", "list")
	require.EqualError(t, err, "please log in first")
}

func TestCLI_UnknownOutput(t *testing.T) {
	t.Parallel()
	b := newBackend(t)
	_, err := b.run("stats", "-o", "xml")
	require.EqualError(t, err, `unknown output format "xml"`)
}
