// Package view turns API payloads into display values: projected CV
// sections, graded match scores and the small formatting rules the pages
// share.
package view

import (
	"fmt"
	"strconv"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

type SectionKind int

const (
	SectionWork SectionKind = iota
	SectionEducation
	SectionProjects
)

var sectionTitles = map[SectionKind]string{
	SectionWork:      "Work Experience",
	SectionEducation: "Education",
	SectionProjects:  "Projects",
}

func (k SectionKind) String() string {
	return sectionTitles[k]
}

func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Section is one titled group of entries of an expanded CV.
type Section struct {
	Kind    SectionKind `json:"kind" yaml:"kind"`
	Title   string      `json:"title" yaml:"title"`
	Entries []Entry     `json:"entries" yaml:"entries"`
}

type Entry struct {
	Heading    string   `json:"heading" yaml:"heading"`
	Subheading string   `json:"subheading,omitempty" yaml:"subheading,omitempty"`
	Meta       string   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Bullets    []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// Project lays out the structured metadata of a CV as sections in the fixed
// order work experience, education, projects. A section is present only when
// its list has at least one element. Extra project fields are ignored.
func Project(meta *recruit.StructuredMetadata) []Section {
	if meta == nil {
		return nil
	}

	var sections []Section

	if len(meta.WorkExperience) > 0 {
		entries := make([]Entry, 0, len(meta.WorkExperience))
		for _, exp := range meta.WorkExperience {
			entries = append(entries, workEntry(exp))
		}
		sections = append(sections, newSection(SectionWork, entries))
	}

	if len(meta.Education) > 0 {
		entries := make([]Entry, 0, len(meta.Education))
		for _, edu := range meta.Education {
			entries = append(entries, educationEntry(edu))
		}
		sections = append(sections, newSection(SectionEducation, entries))
	}

	if len(meta.Projects) > 0 {
		entries := make([]Entry, 0, len(meta.Projects))
		for _, p := range meta.Projects {
			entries = append(entries, Entry{Heading: p.Name, Subheading: p.Description})
		}
		sections = append(sections, newSection(SectionProjects, entries))
	}

	return sections
}

func newSection(kind SectionKind, entries []Entry) Section {
	return Section{Kind: kind, Title: kind.String(), Entries: entries}
}

func workEntry(exp recruit.WorkExperience) Entry {
	entry := Entry{
		Heading:    exp.Position,
		Subheading: exp.Company,
		Meta:       fmt.Sprintf("%s - %s (%d months)", exp.StartDate, exp.EndDate, exp.DurationMonths),
	}
	if len(exp.Responsibilities) > 0 {
		entry.Bullets = exp.Responsibilities
	}
	return entry
}

func educationEntry(edu recruit.Education) Entry {
	meta := edu.FieldOfStudy + " • " + strconv.Itoa(edu.GraduationYear)
	if edu.GPA != nil && *edu.GPA != "" {
		meta += " • GPA: " + *edu.GPA
	}

	return Entry{
		Heading:    edu.Degree,
		Subheading: edu.Institution,
		Meta:       meta,
	}
}
