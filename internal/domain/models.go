package domain

import (
	"fmt"
	"strings"
)

// SortMethod is the ranking the backend applies to search hits
type SortMethod string

const (
	SortRelevance SortMethod = "relevance"
	SortScore     SortMethod = "score"
	SortTime      SortMethod = "time"
)

// SortMethods lists every sort method in display order
var SortMethods = []SortMethod{SortRelevance, SortScore, SortTime}

// ParseSortMethod converts a user or config supplied value into a SortMethod
func ParseSortMethod(s string) (SortMethod, error) {
	switch SortMethod(strings.ToLower(strings.TrimSpace(s))) {
	case SortRelevance:
		return SortRelevance, nil
	case SortScore:
		return SortScore, nil
	case SortTime:
		return SortTime, nil
	}
	return "", fmt.Errorf("unknown sort method %q (want relevance, score or time)", s)
}

// Next returns the sort method that follows m, wrapping around
func (m SortMethod) Next() SortMethod {
	for i, sm := range SortMethods {
		if sm == m {
			return SortMethods[(i+1)%len(SortMethods)]
		}
	}
	return SortRelevance
}

// Prev returns the sort method before m, wrapping around
func (m SortMethod) Prev() SortMethod {
	for i, sm := range SortMethods {
		if sm == m {
			return SortMethods[(i+len(SortMethods)-1)%len(SortMethods)]
		}
	}
	return SortRelevance
}

// Label is the human readable name
func (m SortMethod) Label() string {
	switch m {
	case SortScore:
		return "Score"
	case SortTime:
		return "Time"
	default:
		return "Relevance"
	}
}

func (m SortMethod) String() string { return string(m) }

// SearchRequest is a validated search. Nil optional fields are left out of
// the wire request so the backend applies its own defaults.
type SearchRequest struct {
	Query           string
	Count           *int
	SortMethod      *SortMethod
	WeightRelevance *float64
	WeightScore     *float64
	WeightTime      *float64
	UsePageRank     *bool
}

// SearchResultItem is a single post returned by the backend
type SearchResultItem struct {
	ID                 string  `json:"id"`
	ElasticsearchScore float64 `json:"elasticsearch_score"`
	Subreddit          string  `json:"subreddit"`
	SubredditURL       string  `json:"subreddit_url"`
	Title              string  `json:"title"`
	PostText           string  `json:"post_text"`
	PostID             string  `json:"post_id"`
	Score              int     `json:"score"`
	NumComments        int     `json:"num_comments"`
	PostURL            string  `json:"post_url"`
	Sport              string  `json:"sport"`
	UpvoteRatio        float64 `json:"upvote_ratio"`
	Awards             int     `json:"awards"`
	Time               string  `json:"time"`
	PageRankScore      float64 `json:"pagerank_score"`
}

// SearchResponse is the body of GET /search. Count is what the backend
// reports and is not guaranteed to match len(Data).
type SearchResponse struct {
	Status      string             `json:"status"`
	Message     string             `json:"message"`
	Count       int                `json:"count"`
	Query       string             `json:"query"`
	SortMethod  string             `json:"sort_method"`
	UsePageRank bool               `json:"use_pagerank"`
	Data        []SearchResultItem `json:"data"`
}

// ApiResponse acknowledges the index operations
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Backend status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
