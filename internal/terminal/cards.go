package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
	"github.com/recruitgenius/recruit-cli/internal/upload"
	"github.com/recruitgenius/recruit-cli/internal/view"
)

func (p *Printer) Candidates(candidates []*recruit.Candidate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(candidates) == 0 {
		p.println("No candidates yet. Upload a CV to get started.")
		return
	}

	for _, c := range candidates {
		p.printf("%s %s %s\n", p.paint(bold, c.Name), p.badge(c.Status), p.paint(dim, "#"+strconv.Itoa(c.ID)))
		p.println(listIndent + joinNonEmpty(" • ", c.Email, deref(c.Phone)))
		if len(c.Skills) > 0 {
			p.println(listIndent + p.skills(c.Skills))
		}
		p.println(listIndent + p.paint(dim, "Added "+view.Date(c.CreatedAt, false)))
		p.println()
	}
}

// CandidateHeader prints the candidate a CV page is about, or a not found
// line when c is nil.
func (p *Printer) CandidateHeader(c *recruit.Candidate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c == nil {
		p.println(p.paint(dim, "Candidate not found"))
		p.println()
		return
	}
	p.printf("%s %s\n", p.paint(bold+underline, c.Name), p.badge(c.Status))
	p.println(joinNonEmpty(" • ", c.Email, deref(c.Phone)))
	p.println()
}

// CVs prints every CV of a candidate, in full when expanded reports true
// for its id.
func (p *Printer) CVs(cvs []*recruit.CVDetail, expanded func(id int) bool) {
	if len(cvs) == 0 {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.println(p.paint(bold, "No CVs Found"))
		p.println("This candidate doesn't have any CVs uploaded yet.")
		return
	}
	for _, cv := range cvs {
		p.CV(cv, expanded(cv.ID))
	}
}

func (p *Printer) CV(cv *recruit.CVDetail, expanded bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	meta := cv.StructuredMetadata

	p.printf("%s %s\n", p.paint(bold, cv.FileName), p.paint(dim, "#"+strconv.Itoa(cv.ID)))
	info := []string{view.Date(cv.CreatedAt, true), view.FileSize(cv.FileSizeBytes), view.Language(cv)}
	if meta.YearsOfExperience != nil {
		info = append(info, strconv.FormatFloat(*meta.YearsOfExperience, 'f', -1, 64)+" years exp")
	}
	p.println(listIndent + joinNonEmpty(" • ", info...))
	if len(meta.TechnicalSkills) > 0 {
		p.println(listIndent + p.skills(meta.TechnicalSkills))
	}

	if !expanded {
		p.println()
		return
	}

	for _, section := range view.Project(&meta) {
		p.println()
		p.println(listIndent + p.paint(bold+underline, section.Title))
		for _, entry := range section.Entries {
			p.println(listIndent + listIndent + p.paint(bold, entry.Heading))
			if entry.Subheading != "" {
				p.println(listIndent + listIndent + entry.Subheading)
			}
			if entry.Meta != "" {
				p.println(listIndent + listIndent + p.paint(dim, entry.Meta))
			}
			for _, bullet := range entry.Bullets {
				p.println(listIndent + listIndent + "• " + bullet)
			}
		}
	}

	title, text := view.CVText(cv)
	p.println()
	p.println(listIndent + p.paint(bold+underline, title))
	for _, line := range strings.Split(text, "\n") {
		p.println(listIndent + line)
	}
	p.println()
}

func (p *Printer) Jobs(jobs []*recruit.Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(jobs) == 0 {
		p.println("No job offers yet. Create one with the offer generator.")
		return
	}

	for _, job := range jobs {
		p.printf("%s %s %s\n", p.paint(bold, job.Title), p.badge(job.Status), p.paint(dim, "#"+strconv.Itoa(job.ID)))
		if meta := joinNonEmpty(" • ", deref(job.Department), deref(job.Location), deref(job.SalaryRange)); meta != "" {
			p.println(listIndent + meta)
		}
		p.println(listIndent + view.Excerpt(job.Description))
		p.println(listIndent + p.paint(dim, "Created "+view.Date(job.CreatedAt, false)))
		p.println()
	}
}

// Job prints a job offer with its description rendered as a document, or a
// not found line when job is nil.
func (p *Printer) Job(job *recruit.Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if job == nil {
		p.println("Job not found")
		return
	}

	p.printf("%s %s\n", p.paint(bold+underline, job.Title), p.badge(job.Status))
	if meta := joinNonEmpty(" • ", deref(job.Department), deref(job.Location), deref(job.SalaryRange)); meta != "" {
		p.println(meta)
	}
	p.println()
	p.document(job.Description, "")
}

func (p *Printer) Matches(resp *recruit.MatchingResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := resp.Summary
	p.println(p.paint(bold+underline, "Matching Summary"))
	if s.RoleTitle != "" {
		p.println(listIndent + "Role: " + s.RoleTitle)
	}
	p.println(listIndent + "Primary Stack/Domain: " + s.PrimaryStackOrDomain)
	p.printf("%sCandidates Evaluated: %d (Top %d shown)\n", listIndent, s.TotalCandidatesEvaluated, s.TopCandidatesReturned)
	if len(s.KeyRequiredSkills) > 0 {
		p.println(listIndent + "Key Required Skills: " + strings.Join(s.KeyRequiredSkills, ", "))
	}
	p.println()

	p.println(p.paint(bold, fmt.Sprintf("Matching Candidates (%d)", len(resp.Candidates))))
	p.println()

	for _, c := range resp.Candidates {
		score := p.paint(gradeColors[view.ColorClass(c.MatchScore)]+bold, view.Score(c.MatchScore))
		p.printf("%s  %s\n", p.paint(bold, c.Name), score)
		if c.CurrentRole != "" {
			p.println(listIndent + c.CurrentRole)
		}
		p.printf("%s%s years experience • %s\n", listIndent,
			strconv.FormatFloat(c.Experience.TotalYearsExperience, 'f', -1, 64), c.SeniorityMatch)

		metrics := view.Metrics(c)
		cells := make([]string, 0, len(metrics))
		for _, m := range metrics {
			cells = append(cells, m.Label+" "+p.paint(bold, m.Value))
		}
		p.println(listIndent + strings.Join(cells, " | "))

		if c.OverallRationale != "" {
			p.println(listIndent + p.paint(magenta, c.OverallRationale))
		}
		if chips := view.FlagChips(c.MetricsDetails.ThresholdFlags); len(chips) > 0 {
			painted := make([]string, 0, len(chips))
			for _, chip := range chips {
				painted = append(painted, p.paint(red, "⚠ "+chip))
			}
			p.println(listIndent + strings.Join(painted, "  "))
		}
		p.println()
	}
}

func (p *Printer) UploadFile(f *upload.File) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info := []string{f.MIME, fmt.Sprintf("%.2f KB", float64(f.Size)/1024)}
	if f.Pages > 0 {
		info = append(info, strconv.Itoa(f.Pages)+" pages")
	}
	if f.Paragraphs > 0 {
		info = append(info, strconv.Itoa(f.Paragraphs)+" paragraphs")
	}
	p.printf("%s %s\n", p.paint(bold, f.Name), p.paint(dim, strings.Join(info, " • ")))
	if f.Warning != "" {
		p.println(listIndent + p.paint(yellow, "warning: "+f.Warning))
	}
}

func (p *Printer) UploadResult(res *recruit.UploadResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.println(p.paint(green+bold, "Upload Successful!"))
	p.println(listIndent + "CV ID: " + res.CVID)
	p.println(listIndent + "Candidate ID: " + res.CandidateID)
	md := res.Metadata
	for _, row := range [][2]string{{"Name", md.Name}, {"Email", md.Email}, {"Phone", md.Phone}, {"Language", strings.ToUpper(md.Language)}} {
		if row[1] != "" {
			p.println(listIndent + row[0] + ": " + row[1])
		}
	}
}
