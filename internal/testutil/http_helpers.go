package testutil

import (
	"io"
	"net/http"
	"testing"
	"time"
)

// HTTPGet fetches url and returns the status code and body.
func HTTPGet(t testing.TB, url string) (int, []byte) {
	t.Helper()
	return doRequest(t, http.MethodGet, url)
}

func doRequest(t testing.TB, method, url string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}
