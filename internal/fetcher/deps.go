package fetcher

import (
	"context"
	"encoding/json"
)

// API er det innsamleren trenger fra GitHub-klienten.
type API interface {
	GraphQL(ctx context.Context, query string) (json.RawMessage, error)
	RestGetBatch(ctx context.Context, paths []string) []BatchResult
}

// ResponseCache lagrer REST-svar mellom kjøringer.
type ResponseCache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage) error
}

// BatchResult er utfallet for én sti i en RestGetBatch.
type BatchResult struct {
	Path string
	Data json.RawMessage
	Err  error
}
