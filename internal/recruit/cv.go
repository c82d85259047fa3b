package recruit

import (
	"context"
	"fmt"
	"io"
)

const (
	cvsPath    = "/cvs"
	uploadPath = cvsPath + "/upload"
	// Multipart field the upload endpoint reads the file from.
	uploadField = "file"
)

type CVs struct {
	Items []*CVDetail
}

type CVDetail struct {
	ID                 int                `json:"id"`
	CandidateID        int                `json:"candidate_id"`
	OriginalText       string             `json:"original_text"`
	TranslatedText     string             `json:"translated_text"`
	OriginalLanguage   string             `json:"original_language"`
	FileName           string             `json:"file_name"`
	FilePath           string             `json:"file_path"`
	FileSizeBytes      int64              `json:"file_size_bytes"`
	ExtractedName      *string            `json:"extracted_name"`
	ExtractedEmail     *string            `json:"extracted_email"`
	ExtractedPhone     *string            `json:"extracted_phone"`
	StructuredMetadata StructuredMetadata `json:"structured_metadata"`
	IsProcessed        bool               `json:"is_processed"`
	IsTranslated       bool               `json:"is_translated"`
	CreatedAt          string             `json:"created_at"`
	UpdatedAt          string             `json:"updated_at"`
}

// StructuredMetadata is the backend's extraction of a CV. Every field is
// optional; a missing list and an empty list mean the same thing.
type StructuredMetadata struct {
	FullName            *string    `json:"full_name,omitempty" mapstructure:"full_name"`
	Email               *string    `json:"email,omitempty" mapstructure:"email"`
	Phone               *string    `json:"phone,omitempty" mapstructure:"phone"`
	Location            *string    `json:"location,omitempty" mapstructure:"location"`
	LinkedInURL         *string    `json:"linkedin_url,omitempty" mapstructure:"linkedin_url"`
	GithubURL           *string    `json:"github_url,omitempty" mapstructure:"github_url"`
	PortfolioURL        *string    `json:"portfolio_url,omitempty" mapstructure:"portfolio_url"`
	ProfessionalSummary *string    `json:"professional_summary,omitempty" mapstructure:"professional_summary"`
	YearsOfExperience   *float64   `json:"years_of_experience,omitempty" mapstructure:"years_of_experience"`
	TechnicalSkills     []string   `json:"technical_skills,omitempty" mapstructure:"technical_skills"`
	SoftSkills          []string   `json:"soft_skills,omitempty" mapstructure:"soft_skills"`
	Languages           []Language `json:"languages,omitempty" mapstructure:"languages"`

	WorkExperience        []WorkExperience `json:"work_experience,omitempty" mapstructure:"work_experience"`
	TotalExperienceMonths *int             `json:"total_experience_months,omitempty" mapstructure:"total_experience_months"`
	Education             []Education      `json:"education,omitempty" mapstructure:"education"`
	HighestEducationLevel *string          `json:"highest_education_level,omitempty" mapstructure:"highest_education_level"`
	Certifications        []string         `json:"certifications,omitempty" mapstructure:"certifications"`
	Projects              []Project        `json:"projects,omitempty" mapstructure:"projects"`
	Publications          []string         `json:"publications,omitempty" mapstructure:"publications"`
	Awards                []string         `json:"awards,omitempty" mapstructure:"awards"`

	HasEmploymentGaps    *bool   `json:"has_employment_gaps,omitempty" mapstructure:"has_employment_gaps"`
	EmploymentGapDetails *string `json:"employment_gap_details,omitempty" mapstructure:"employment_gap_details"`
	CareerProgression    *string `json:"career_progression,omitempty" mapstructure:"career_progression"`

	// Extra holds keys the client does not know about yet.
	Extra map[string]any `json:"extra,omitempty" mapstructure:",remain"`
}

type Language struct {
	Language    string `json:"language" mapstructure:"language"`
	Proficiency string `json:"proficiency" mapstructure:"proficiency"`
}

type WorkExperience struct {
	Company          string   `json:"company" mapstructure:"company"`
	Position         string   `json:"position" mapstructure:"position"`
	StartDate        string   `json:"start_date" mapstructure:"start_date"`
	EndDate          string   `json:"end_date" mapstructure:"end_date"`
	DurationMonths   int      `json:"duration_months" mapstructure:"duration_months"`
	Responsibilities []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Technologies     []string `json:"technologies,omitempty" mapstructure:"technologies"`
}

type Education struct {
	Institution    string  `json:"institution" mapstructure:"institution"`
	Degree         string  `json:"degree" mapstructure:"degree"`
	FieldOfStudy   string  `json:"field_of_study" mapstructure:"field_of_study"`
	GraduationYear int     `json:"graduation_year" mapstructure:"graduation_year"`
	GPA            *string `json:"gpa,omitempty" mapstructure:"gpa"`
}

type Project struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	// Extra keeps any other project fields. They are carried but never shown.
	Extra map[string]any `json:"extra,omitempty" mapstructure:",remain"`
}

// UnmarshalJSON routes the payload through mapstructure so unknown keys are
// kept in Extra.
func (m *StructuredMetadata) UnmarshalJSON(data []byte) error {
	type plain StructuredMetadata
	var decoded plain
	if err := decodeLoose(data, &decoded); err != nil {
		return err
	}
	*m = StructuredMetadata(decoded)
	return nil
}

// Upload is a file ready to be sent to the CV upload endpoint.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type UploadResult struct {
	CVID        string         `json:"cv_id" mapstructure:"cv_id"`
	CandidateID string         `json:"candidate_id" mapstructure:"candidate_id"`
	Metadata    UploadMetadata `json:"metadata" mapstructure:"metadata"`
}

type UploadMetadata struct {
	Email    string         `json:"email,omitempty" mapstructure:"email"`
	Name     string         `json:"name,omitempty" mapstructure:"name"`
	Phone    string         `json:"phone,omitempty" mapstructure:"phone"`
	Language string         `json:"language,omitempty" mapstructure:"language"`
	Extra    map[string]any `json:"extra,omitempty" mapstructure:",remain"`
}

// UnmarshalJSON accepts numeric ids and keeps unknown metadata keys.
func (r *UploadResult) UnmarshalJSON(data []byte) error {
	type plain UploadResult
	var decoded plain
	if err := decodeLoose(data, &decoded); err != nil {
		return err
	}
	*r = UploadResult(decoded)
	return nil
}

func (c *Client) GetCandidateCVs(ctx context.Context, candidateID int) (*CVs, error) {
	if err := validate.Var(candidateID, "gt=0"); err != nil {
		return nil, fmt.Errorf("candidate id: %w", err)
	}

	var items []*CVDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s/candidate/%d", cvsPath, candidateID), nil, &items); err != nil {
		return nil, err
	}

	return &CVs{Items: items}, nil
}

func (c *Client) UploadCV(ctx context.Context, upload Upload) (*UploadResult, error) {
	if err := validate.Struct(uploadRequest{
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		HasBody:     upload.Body != nil,
	}); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := c.postFile(ctx, uploadPath, uploadField, upload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *CVs) Len() int {
	return len(c.Items)
}

func (c *CVs) FindByID(id int) *CVDetail {
	for _, cv := range c.Items {
		if cv.ID == id {
			return cv
		}
	}
	return nil
}
