package suggest

import "context"

// Request and Response form the whole contract with the suggestion
// collaborator. The content is passed through untouched and never persisted.
type Request struct {
	ExistingHabits []string `json:"existing_habits"`
	Goals          string   `json:"goals"`
}

type Response struct {
	Suggestions []string `json:"suggestions"`
	Reasoning   string   `json:"reasoning"`
}

type Provider interface {
	Suggest(ctx context.Context, req *Request) (*Response, error)
}
