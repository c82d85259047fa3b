package recruit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DefaultTopK is how many candidates the matches view asks for.
const DefaultTopK = 10

type MatchRequest struct {
	JobID int `validate:"gt=0"`
	TopK  int `validate:"gte=1,lte=100"`
}

type MatchingResponse struct {
	JobID      int                  `json:"job_id"`
	Summary    MatchingSummary      `json:"summary"`
	Candidates []*MatchingCandidate `json:"candidates"`
}

type MatchingSummary struct {
	RoleTitle                string   `json:"role_title"`
	PrimaryStackOrDomain     string   `json:"primary_stack_or_domain"`
	KeyRequiredSkills        []string `json:"key_required_skills"`
	NiceToHaveSkills         []string `json:"nice_to_have_skills"`
	HardConstraintsApplied   []string `json:"hard_constraints_applied"`
	TotalCandidatesEvaluated int      `json:"total_candidates_evaluated"`
	TopCandidatesReturned    int      `json:"top_candidates_returned"`
}

// MatchingCandidate scores are computed by the backend and only displayed here.
type MatchingCandidate struct {
	CandidateID              int     `json:"candidate_id"`
	CVID                     int     `json:"cv_id"`
	Name                     string  `json:"name"`
	CurrentRole              string  `json:"current_role"`
	MatchScore               float64 `json:"match_score"`
	SemanticSimilarityScore  float64 `json:"semantic_similarity_score"`
	SkillsMatchScore         float64 `json:"skills_match_score"`
	ExperienceRelevanceScore float64 `json:"experience_relevance_score"`
	EducationFitScore        float64 `json:"education_fit_score"`
	AchievementImpactScore   float64 `json:"achievement_impact_score"`
	KeywordDensityScore      float64 `json:"keyword_density_score"`
	EmploymentGapScore       float64 `json:"employment_gap_score"`
	ReadabilityScore         float64 `json:"readability_score"`
	AIConfidenceScore        float64 `json:"ai_confidence_score"`
	Experience               struct {
		TotalYearsExperience    float64 `json:"total_years_experience"`
		RelevantExperienceYears float64 `json:"relevant_experience_years"`
		RelevantSummary         string  `json:"relevant_summary"`
	} `json:"experience"`
	SeniorityMatch string `json:"seniority_match"`
	LocationMatch  struct {
		CandidateLocation string `json:"candidate_location"`
		CandidateCity     string `json:"candidate_city"`
		Compatible        bool   `json:"compatible"`
	} `json:"location_match"`
	OverallRationale string `json:"overall_rationale"`
	MetricsDetails   struct {
		SemanticSimilarity float64 `json:"semantic_similarity"`
		WeightsUsed        struct {
			SkillsExperience      float64 `json:"skills_experience"`
			EducationAchievements float64 `json:"education_achievements"`
			QualityRisk           float64 `json:"quality_risk"`
		} `json:"weights_used"`
		ThresholdFlags ThresholdFlags `json:"threshold_flags"`
	} `json:"metrics_details"`
}

type ThresholdFlags struct {
	SkillsBelow70          bool `json:"skills_below_70"`
	ConfidenceBelow80      bool `json:"confidence_below_80"`
	EmploymentGapsDetected bool `json:"employment_gaps_detected"`
}

func (c *Client) MatchJob(ctx context.Context, req MatchRequest) (*MatchingResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("top_k", strconv.Itoa(req.TopK))

	var resp MatchingResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/%d/match", jobsPath, req.JobID), q, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
