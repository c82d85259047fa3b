package recruit

import (
	"context"
	"fmt"
)

const jobsPath = "/jobs"

type Jobs struct {
	Items []*Job
}

type Job struct {
	ID                 int            `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Department         *string        `json:"department"`
	Location           *string        `json:"location"`
	SalaryRange        *string        `json:"salary_range"`
	AdditionalMetadata map[string]any `json:"additional_metadata,omitempty"`
	Status             string         `json:"status"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          *string        `json:"updated_at"`
}

func (c *Client) ListJobs(ctx context.Context, page Page) (*Jobs, error) {
	if err := validate.Struct(page); err != nil {
		return nil, err
	}

	var items []*Job
	if err := c.getJSON(ctx, jobsPath, page.query(), &items); err != nil {
		return nil, err
	}

	return &Jobs{Items: items}, nil
}

// GetJob returns nil and no error when the API answers 404.
func (c *Client) GetJob(ctx context.Context, id int) (*Job, error) {
	if err := validate.Var(id, "gt=0"); err != nil {
		return nil, fmt.Errorf("job id: %w", err)
	}

	var job Job
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d", jobsPath, id), nil, &job); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &job, nil
}

func (j *Jobs) Len() int {
	return len(j.Items)
}
