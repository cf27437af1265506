package techstacks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportNewsPostSendsCookieAndBody(t *testing.T) {
	var gotPath, gotCookie, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if c, err := r.Cookie(".AspNetCore.Identity.Application"); err == nil {
			gotCookie = c.Value
		}
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok123")
	err := client.ImportNewsPost(context.Background(), map[string]string{"title": "Go 1.22"})
	require.NoError(t, err)
	require.Equal(t, "/api/ImportNewsPost", gotPath)
	require.Equal(t, "tok123", gotCookie)
	require.JSONEq(t, `{"title": "Go 1.22"}`, gotBody)
}

func TestImportNewsPostErrorIncludesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "not authorized")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad")
	err := client.ImportNewsPost(context.Background(), map[string]string{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
	require.Contains(t, err.Error(), "not authorized")
}

func TestSyncStats(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, "tok").SyncStats(context.Background()))
	require.Equal(t, "/api/SyncStats", gotPath)
}
