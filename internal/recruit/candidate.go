package recruit

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const candidatesPath = "/candidates"

type Candidates struct {
	Items []*Candidate
}

type Candidate struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           *string        `json:"phone"`
	ResumeText      *string        `json:"resume_text"`
	ResumeURL       *string        `json:"resume_url"`
	Skills          []string       `json:"skills"`
	ExperienceYears *string        `json:"experience_years"`
	Education       *string        `json:"education"`
	Notes           *string        `json:"notes"`
	Status          string         `json:"status"`
	Analysis        map[string]any `json:"analysis,omitempty"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       *string        `json:"updated_at"`
}

// Page selects a window of a listing endpoint.
type Page struct {
	Skip  int `validate:"gte=0"`
	Limit int `validate:"gte=1,lte=1000"`
}

// FirstPage is what every listing view asks for.
func FirstPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

func (p Page) query() url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(p.Skip))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

func (c *Client) ListCandidates(ctx context.Context, page Page) (*Candidates, error) {
	if err := validate.Struct(page); err != nil {
		return nil, err
	}

	var items []*Candidate
	if err := c.getJSON(ctx, candidatesPath, page.query(), &items); err != nil {
		return nil, err
	}

	return &Candidates{Items: items}, nil
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id int) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// Statuses returns the distinct lowercase statuses in first-seen order.
func (c *Candidates) Statuses() []string {
	var statuses []string
	for _, candidate := range c.Items {
		status := strings.ToLower(strings.TrimSpace(candidate.Status))
		if status == "" || slices.Contains(statuses, status) {
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Keep retains the candidates for which keep returns true and returns the ids
// of the ones removed.
func (c *Candidates) Keep(keep func(*Candidate) bool) []int {
	var (
		kept    []*Candidate
		dropped []int
	)
	for _, candidate := range c.Items {
		if keep(candidate) {
			kept = append(kept, candidate)
			continue
		}
		dropped = append(dropped, candidate.ID)
	}
	c.Items = kept
	return dropped
}
