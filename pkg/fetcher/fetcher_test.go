package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetHTMLBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h2>Terms</h2></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcherWithClient(srv.Client())

	body, err := f.GetHTMLBytes(context.Background(), srv.URL+"/docs/en/terms.html")
	if err != nil {
		t.Fatalf("GetHTMLBytes() error = %v", err)
	}
	if !strings.Contains(string(body), "<h2>Terms</h2>") {
		t.Errorf("body = %q, want the page", body)
	}

	if _, err := f.GetHTMLBytes(context.Background(), srv.URL+"/missing.html"); err == nil {
		t.Error("GetHTMLBytes() on 404 error = nil, want error")
	}
}
