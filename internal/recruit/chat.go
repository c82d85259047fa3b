package recruit

import (
	"context"
	"net/url"
	"strings"
)

const (
	chatQueryPath      = "/chat/query"
	jobDescriptionPath = "/job-descriptions/chat"

	// DefaultUserIdentifier is sent with every CV chat query.
	DefaultUserIdentifier = "web_user"

	// SaveInstruction is the message the job description chat understands as
	// "persist the current draft". The backend has no dedicated save endpoint.
	SaveInstruction = "I like, please save then."
)

type ChatRequest struct {
	Query          string `json:"query" validate:"required"`
	ThreadID       string `json:"thread_id,omitempty"`
	UserIdentifier string `json:"user_identifier" validate:"required"`
}

type ChatResponse struct {
	ThreadID           string  `json:"thread_id"`
	ResponseText       string  `json:"response_text"`
	StructuredResponse struct {
		Type           string `json:"type"`
		AgentUsedTools bool   `json:"agent_used_tools"`
	} `json:"structured_response"`
	CandidateIDs []int   `json:"candidate_ids"`
	Error        *string `json:"error"`
}

type jobDescriptionRequest struct {
	Message string `json:"message" validate:"required"`
}

type jobDescriptionResponse struct {
	Response    string `json:"response"`
	Message     string `json:"message"`
	Description string `json:"description"`
	ThreadID    string `json:"thread_id"`
}

// JobDescriptionReply is one turn of the job description generator.
type JobDescriptionReply struct {
	Text     string `json:"text"`
	ThreadID string `json:"thread_id"`
}

// ChatQuery asks the CV database a question. A payload carrying a non-empty
// error field is returned as *AppError.
func (c *Client) ChatQuery(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var resp ChatResponse
	if err := c.postJSON(ctx, chatQueryPath, nil, req, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil && strings.TrimSpace(*resp.Error) != "" {
		return &resp, &AppError{Message: *resp.Error}
	}

	return &resp, nil
}

// JobDescriptionChat sends one message to the generator. An empty threadID
// starts a new session.
func (c *Client) JobDescriptionChat(ctx context.Context, threadID, message string) (*JobDescriptionReply, error) {
	body := jobDescriptionRequest{Message: message}
	if err := validate.Struct(body); err != nil {
		return nil, err
	}

	var q url.Values
	if threadID != "" {
		q = url.Values{}
		q.Set("thread_id", threadID)
	}

	var resp jobDescriptionResponse
	if err := c.postJSON(ctx, jobDescriptionPath, q, body, &resp); err != nil {
		return nil, err
	}

	return &JobDescriptionReply{
		Text:     firstNonEmpty(resp.Response, resp.Message, resp.Description),
		ThreadID: resp.ThreadID,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
