package dto

import "github.com/paperdesk/paperdesk/internal/model"

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required,notblank,max=500"`
}

// SearchResponse wraps the papers found.
type SearchResponse struct {
	Papers []model.Paper `json:"papers"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,notblank,max=8000"`
}

// ChatResponse carries the model's reply verbatim.
type ChatResponse struct {
	Response string `json:"response"`
}

// ToSearchResponse never returns a null papers list.
func ToSearchResponse(papers []model.Paper) SearchResponse {
	if papers == nil {
		papers = []model.Paper{}
	}
	return SearchResponse{Papers: papers}
}
