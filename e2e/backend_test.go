//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// fakeBackend serves the three search service endpoints from memory
type fakeBackend struct {
	mu       sync.Mutex
	indexed  bool
	calls    []string
	failNext bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{indexed: true}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	if b.failNext {
		b.failNext = false
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "index unavailable"})
		return
	}

	switch {
	case r.URL.Path == "/search" && r.Method == http.MethodGet:
		query := r.URL.Query().Get("query")
		var data []map[string]any
		if b.indexed {
			for i := 1; i <= 3; i++ {
				data = append(data, map[string]any{
					"id":           fmt.Sprintf("post-%d", i),
					"title":        fmt.Sprintf("%s highlight %d", query, i),
					"subreddit":    "soccer",
					"sport":        "soccer",
					"post_text":    fmt.Sprintf("Full text of %s post %d", query, i),
					"post_url":     fmt.Sprintf("https://reddit.com/r/soccer/post-%d", i),
					"score":        100 * i,
					"num_comments": 10 * i,
					"upvote_ratio": 0.9,
					"time":         "2024-03-01T12:00:00",
				})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Found %d results", len(data)),
			"count":   len(data),
			"query":   query,
			"data":    data,
		})
	case r.URL.Path == "/trigger-indexer" && r.Method == http.MethodGet:
		b.indexed = true
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Indexer triggered successfully"})
	case r.URL.Path == "/clear-indexer" && r.Method == http.MethodDelete:
		b.indexed = false
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Indexes have been cleared"})
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not Found"})
	}
}

// Calls returns "METHOD /path" for every request received so far
func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// FailNext makes the next request answer with HTTP 500
func (b *fakeBackend) FailNext() {
	b.mu.Lock()
	b.failNext = true
	b.mu.Unlock()
}
