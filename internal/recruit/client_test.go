package recruit

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T, router http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return New(zap.NewNop(), srv.URL+"/", "secret")
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestListCandidatesSendsPageAndHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/candidates", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("skip"); got != "0" {
			t.Errorf("expected skip=0, got %q", got)
		}
		if got := req.URL.Query().Get("limit"); got != "100" {
			t.Errorf("expected limit=100, got %q", got)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if req.Header.Get(requestIDHeader) == "" {
			t.Errorf("expected request id header")
		}
		io.WriteString(w, `[{"id":1,"name":"Ada","email":"ada@example.com","skills":["Go"],"status":"New"},
			{"id":2,"name":"Bob","email":"bob@example.com","skills":[],"status":"hired","phone":null}]`)
	})

	client := newTestClient(t, r)

	candidates, err := client.ListCandidates(context.Background(), FirstPage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidates.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", candidates.Len())
	}
	if c := candidates.FindByID(2); c == nil || c.Name != "Bob" || c.Phone != nil {
		t.Fatalf("unexpected candidate 2: %+v", c)
	}
	if candidates.FindByID(3) != nil {
		t.Fatalf("expected nil for unknown candidate")
	}
	if got := strings.Join(candidates.Statuses(), ","); got != "new,hired" {
		t.Fatalf("unexpected statuses %q", got)
	}
}

func TestListCandidatesRejectsBadPageWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/v1/candidates", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
	})

	client := newTestClient(t, r)

	_, err := client.ListCandidates(context.Background(), Page{Skip: -1, Limit: 0})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 failing fields, got %d", len(verrs))
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request, got %d", calls.Load())
	}
}

func TestGetCandidateCVsDecodesStructuredMetadata(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/cvs/candidate/{candidateID}", func(w http.ResponseWriter, req *http.Request) {
		if id := chi.URLParam(req, "candidateID"); id != "7" {
			t.Errorf("unexpected candidate id %q", id)
		}
		io.WriteString(w, `[{
			"id": 3,
			"candidate_id": 7,
			"file_name": "cv.pdf",
			"original_language": "de",
			"is_translated": true,
			"structured_metadata": {
				"full_name": "Ada Lovelace",
				"years_of_experience": "6",
				"technical_skills": ["Go", "SQL"],
				"work_experience": [{"company": "Acme", "position": "Engineer", "duration_months": "24"}],
				"education": [{"institution": "MIT", "degree": "BSc", "graduation_year": 2015, "gpa": 3.9}],
				"projects": [{"name": "p", "description": "d", "url": "https://x"}],
				"has_employment_gaps": false,
				"hobbies": ["chess"]
			}
		}]`)
	})

	client := newTestClient(t, r)

	cvs, err := client.GetCandidateCVs(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cvs.Len() != 1 {
		t.Fatalf("expected 1 cv, got %d", cvs.Len())
	}

	meta := cvs.FindByID(3).StructuredMetadata
	if meta.FullName == nil || *meta.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected full name: %v", meta.FullName)
	}
	if meta.YearsOfExperience == nil || *meta.YearsOfExperience != 6 {
		t.Fatalf("expected weakly typed years of experience, got %v", meta.YearsOfExperience)
	}
	if meta.WorkExperience[0].DurationMonths != 24 {
		t.Fatalf("unexpected duration %d", meta.WorkExperience[0].DurationMonths)
	}
	if gpa := meta.Education[0].GPA; gpa == nil || *gpa != "3.9" {
		t.Fatalf("unexpected gpa %v", gpa)
	}
	if meta.Projects[0].Extra["url"] != "https://x" {
		t.Fatalf("expected project extra field, got %v", meta.Projects[0].Extra)
	}
	if _, ok := meta.Extra["hobbies"]; !ok {
		t.Fatalf("expected unknown key in Extra, got %v", meta.Extra)
	}
	if meta.HasEmploymentGaps == nil || *meta.HasEmploymentGaps {
		t.Fatalf("unexpected employment gaps %v", meta.HasEmploymentGaps)
	}
}

func TestGetCandidateCVsEmptyMetadata(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/cvs/candidate/{candidateID}", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, `[{"id": 1, "structured_metadata": null}, {"id": 2, "structured_metadata": {}}]`)
	})

	client := newTestClient(t, r)

	cvs, err := client.GetCandidateCVs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, cv := range cvs.Items {
		if cv.StructuredMetadata.WorkExperience != nil || cv.StructuredMetadata.FullName != nil {
			t.Fatalf("expected empty metadata for cv %d, got %+v", cv.ID, cv.StructuredMetadata)
		}
	}
}

func TestGetCandidateCVsSkipsUnconvertibleValues(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/cvs/candidate/{candidateID}", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "structured_metadata": {
				"full_name": "Ada",
				"years_of_experience": "5+",
				"has_employment_gaps": "sometimes",
				"location": {"city": "Berlin"},
				"education": [{"institution": "MIT", "graduation_year": "unknown"}]
			}},
			{"id": 2}
		]`)
	})

	client := newTestClient(t, r)

	cvs, err := client.GetCandidateCVs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cvs.Len() != 2 || cvs.FindByID(2) == nil {
		t.Fatalf("expected both cvs, got %d", cvs.Len())
	}

	meta := cvs.FindByID(1).StructuredMetadata
	if meta.FullName == nil || *meta.FullName != "Ada" {
		t.Fatalf("unexpected full name: %v", meta.FullName)
	}
	if meta.YearsOfExperience != nil || meta.HasEmploymentGaps != nil || meta.Location != nil {
		t.Fatalf("expected unconvertible values to stay unset, got %+v", meta)
	}
	if len(meta.Education) != 1 || meta.Education[0].Institution != "MIT" || meta.Education[0].GraduationYear != 0 {
		t.Fatalf("unexpected education %+v", meta.Education)
	}
}

func TestUploadCVSendsMultipart(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/cvs/upload", func(w http.ResponseWriter, req *http.Request) {
		file, header, err := req.FormFile("file")
		if err != nil {
			t.Errorf("read form file: %v", err)
			return
		}
		defer file.Close()

		if header.Filename != "ada.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("unexpected part content type %q", ct)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "%PDF-1.4" {
			t.Errorf("unexpected body %q", data)
		}
		io.WriteString(w, `{"cv_id": 12, "candidate_id": "5", "metadata": {"name": "Ada", "language": "en", "source": "upload"}}`)
	})

	client := newTestClient(t, r)

	res, err := client.UploadCV(context.Background(), Upload{
		Filename:    "ada.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CVID != "12" || res.CandidateID != "5" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Metadata.Name != "Ada" || res.Metadata.Extra["source"] != "upload" {
		t.Fatalf("unexpected metadata: %+v", res.Metadata)
	}
}

func TestUploadCVRequiresBody(t *testing.T) {
	client := New(nil, "http://127.0.0.1:0", "")

	if _, err := client.UploadCV(context.Background(), Upload{Filename: "a.pdf", ContentType: "application/pdf"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestGetJobNotFoundReturnsNil(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/jobs/{jobID}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "jobID") == "1" {
			io.WriteString(w, `{"id": 1, "title": "Go Engineer", "status": "active", "department": null}`)
			return
		}
		http.Error(w, `{"detail":"Job not found"}`, http.StatusNotFound)
	})

	client := newTestClient(t, r)

	job, err := client.GetJob(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Title != "Go Engineer" || job.Department != nil {
		t.Fatalf("unexpected job: %+v", job)
	}

	job, err = client.GetJob(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected nil error for missing job, got %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job, got %+v", job)
	}
}

func TestListJobsStatusError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/jobs", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, strings.Repeat("x", 2*maxErrorBody), http.StatusInternalServerError)
	})

	client := newTestClient(t, r)

	_, err := client.ListJobs(context.Background(), FirstPage())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
	if len(statusErr.Body) != maxErrorBody {
		t.Fatalf("expected body truncated to %d, got %d", maxErrorBody, len(statusErr.Body))
	}
	if IsNotFound(err) {
		t.Fatalf("500 must not be reported as not found")
	}
}

func TestMatchJobSendsTopK(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/jobs/{jobID}/match", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("top_k"); got != "10" {
			t.Errorf("expected top_k=10, got %q", got)
		}
		writeJSON(t, w, map[string]any{
			"job_id": 4,
			"summary": map[string]any{
				"role_title":                 "Backend",
				"key_required_skills":        []string{"Go"},
				"total_candidates_evaluated": 30,
				"top_candidates_returned":    1,
			},
			"candidates": []map[string]any{{
				"candidate_id": 9,
				"name":         "Ada",
				"match_score":  71.25,
				"metrics_details": map[string]any{
					"threshold_flags": map[string]any{"skills_below_70": true},
				},
			}},
		})
	})

	client := newTestClient(t, r)

	resp, err := client.MatchJob(context.Background(), MatchRequest{JobID: 4, TopK: DefaultTopK})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Summary.TotalCandidatesEvaluated != 30 || len(resp.Candidates) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	flags := resp.Candidates[0].MetricsDetails.ThresholdFlags
	if !flags.SkillsBelow70 || flags.ConfidenceBelow80 || flags.EmploymentGapsDetected {
		t.Fatalf("unexpected flags: %+v", flags)
	}
}

func TestJobDescriptionChatThreadAndReplyText(t *testing.T) {
	var (
		mu          sync.Mutex
		seenThreads []string
	)
	r := chi.NewRouter()
	r.Post("/api/v1/job-descriptions/chat", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		seenThreads = append(seenThreads, req.URL.Query().Get("thread_id"))
		mu.Unlock()

		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		switch body["message"] {
		case SaveInstruction:
			writeJSON(t, w, map[string]string{"message": "saved", "thread_id": "t-1"})
		case "describe":
			writeJSON(t, w, map[string]string{"description": "# Draft", "thread_id": "t-1"})
		default:
			writeJSON(t, w, map[string]string{"response": "# Offer", "message": "ignored", "thread_id": "t-1"})
		}
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	reply, err := client.JobDescriptionChat(ctx, "", "senior go engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "# Offer" || reply.ThreadID != "t-1" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	reply, err = client.JobDescriptionChat(ctx, reply.ThreadID, "describe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "# Draft" {
		t.Fatalf("expected description fallback, got %q", reply.Text)
	}

	reply, err = client.JobDescriptionChat(ctx, reply.ThreadID, SaveInstruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "saved" {
		t.Fatalf("expected message fallback, got %q", reply.Text)
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(seenThreads, ",") != ",t-1,t-1" {
		t.Fatalf("unexpected thread ids %q", seenThreads)
	}

	if _, err := client.JobDescriptionChat(ctx, "", ""); err == nil {
		t.Fatalf("expected validation error for empty message")
	}
}

func TestChatQueryErrorField(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/chat/query", func(w http.ResponseWriter, req *http.Request) {
		var body ChatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.UserIdentifier != DefaultUserIdentifier {
			t.Errorf("unexpected user identifier %q", body.UserIdentifier)
		}
		if body.Query == "fail" {
			writeJSON(t, w, map[string]any{"thread_id": "t", "error": "agent crashed"})
			return
		}
		writeJSON(t, w, map[string]any{"thread_id": "t", "response_text": "Two candidates", "candidate_ids": []int{1, 2}, "error": nil})
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	resp, err := client.ChatQuery(ctx, ChatRequest{Query: "who knows go", UserIdentifier: DefaultUserIdentifier})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ResponseText != "Two candidates" || len(resp.CandidateIDs) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = client.ChatQuery(ctx, ChatRequest{Query: "fail", ThreadID: "t", UserIdentifier: DefaultUserIdentifier})

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Message != "agent crashed" {
		t.Fatalf("expected AppError, got %v", err)
	}
}

func TestDoHandlesGzipAndLogs(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/jobs", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Accept-Encoding") != "gzip" {
			t.Errorf("expected gzip accept encoding")
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		io.WriteString(gz, `[{"id": 1, "title": "Go"}]`)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	core, observed := observer.New(zapcore.DebugLevel)
	client := New(zap.New(core), srv.URL, "")

	jobs, err := client.ListJobs(context.Background(), FirstPage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 1 || jobs.Items[0].ID != 1 {
		t.Fatalf("expected job 1, got %+v", jobs.Items)
	}

	entries := observed.FilterMessage("got response").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 response log, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["endpoint"] != "/api/v1/jobs" || ctx["method"] != "GET" {
		t.Fatalf("unexpected log fields: %v", ctx)
	}
}

func TestNewDefaults(t *testing.T) {
	client := New(nil, "  ", " tok ")

	if client.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", client.APIURL)
	}
	if client.token != "tok" {
		t.Fatalf("expected trimmed token, got %q", client.token)
	}
	if got := client.endpoint("/jobs"); got != "http://localhost:8000/api/v1/jobs" {
		t.Fatalf("unexpected endpoint %q", got)
	}

	client.SetRateLimit(5)
	if client.limiter.Limit() != 5 {
		t.Fatalf("expected limit 5, got %v", client.limiter.Limit())
	}
	client.SetRateLimit(0)
	if !client.limiter.Allow() || !client.limiter.Allow() {
		t.Fatalf("expected unlimited limiter")
	}
}
