package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	GradeAPlus            = "A+"
	GradeA                = "A"
	GradeBPlus            = "B+"
	GradeB                = "B"
	GradeC                = "C"
	GradeNeedsImprovement = "Needs Improvement"
)

// Display caps applied to every result regardless of where it came from.
const (
	MaxFeedbackItems  = 5
	MaxTechnicalItems = 15
	MaxSkillItems     = 10
	MaxMissingSkills  = 5
)

const (
	SectionContact    = "contact"
	SectionSummary    = "summary"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
)

var SectionNames = []string{
	SectionContact,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
}

// GradeFor maps a 0-100 score onto the grade ladder.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return GradeAPlus
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeBPlus
	case score >= 60:
		return GradeB
	case score >= 50:
		return GradeC
	default:
		return GradeNeedsImprovement
	}
}

type SectionAnalysis struct {
	Present  bool   `json:"present"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type SectionsAnalysis struct {
	Contact    SectionAnalysis `json:"contact"`
	Summary    SectionAnalysis `json:"summary"`
	Education  SectionAnalysis `json:"education"`
	Experience SectionAnalysis `json:"experience"`
	Skills     SectionAnalysis `json:"skills"`
	Projects   SectionAnalysis `json:"projects"`
}

// Section returns the entry for name, or nil for an unknown section.
func (s *SectionsAnalysis) Section(name string) *SectionAnalysis {
	switch name {
	case SectionContact:
		return &s.Contact
	case SectionSummary:
		return &s.Summary
	case SectionEducation:
		return &s.Education
	case SectionExperience:
		return &s.Experience
	case SectionSkills:
		return &s.Skills
	case SectionProjects:
		return &s.Projects
	}
	return nil
}

type SkillsAnalysis struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
	Missing   []string `json:"missing"`
}

type ATSOptimization struct {
	Score               int      `json:"score"`
	Feedback            string   `json:"feedback"`
	RecommendedKeywords []string `json:"recommendedKeywords"`
	MatchedKeywords     []string `json:"matchedKeywords,omitempty"`
}

type AnalysisMetadata struct {
	Model        string    `json:"model"`
	Provider     string    `json:"provider"`
	AnalyzedAt   time.Time `json:"analyzedAt"`
	WordCount    int       `json:"wordCount"`
	HasEmail     bool      `json:"hasEmail"`
	HasPhone     bool      `json:"hasPhone"`
	SkillCount   int       `json:"skillCount,omitempty"`
	HasLinkedIn  bool      `json:"hasLinkedIn,omitempty"`
	DetectedRole string    `json:"detectedRole,omitempty"`
}

type AnalysisResult struct {
	OverallScore             int              `json:"overallScore"`
	Grade                    string           `json:"grade"`
	Summary                  string           `json:"summary"`
	Strengths                []string         `json:"strengths"`
	Weaknesses               []string         `json:"weaknesses"`
	SectionsAnalysis         SectionsAnalysis `json:"sectionsAnalysis"`
	SkillsAnalysis           SkillsAnalysis   `json:"skillsAnalysis"`
	ATSOptimization          ATSOptimization  `json:"atsOptimization"`
	DetailedFeedback         []string         `json:"detailedFeedback,omitempty"`
	Recommendations          []string         `json:"recommendations"`
	SuggestedJobTitles       []string         `json:"suggestedJobTitles"`
	EstimatedExperienceLevel string           `json:"estimatedExperienceLevel,omitempty"`
	IndustryFit              []string         `json:"industryFit,omitempty"`
	SalaryRange              string           `json:"salaryRange,omitempty"`
	Metadata                 AnalysisMetadata `json:"metadata"`
}

// Normalize clamps scores, recomputes the grade, de-duplicates lists and applies the display caps.
// Required lists come out non-nil so they serialize as [] rather than null.
func (r *AnalysisResult) Normalize() {
	r.OverallScore = clamp(r.OverallScore, 0, 100)
	r.Grade = GradeFor(r.OverallScore)
	r.Summary = strings.TrimSpace(r.Summary)

	r.Strengths = Dedupe(r.Strengths, MaxFeedbackItems)
	r.Weaknesses = Dedupe(r.Weaknesses, MaxFeedbackItems)
	r.Recommendations = Dedupe(r.Recommendations, 0)
	r.SuggestedJobTitles = Dedupe(r.SuggestedJobTitles, 0)

	for _, name := range SectionNames {
		section := r.SectionsAnalysis.Section(name)
		section.Score = clamp(section.Score, 0, 10)
	}

	r.SkillsAnalysis.Technical = Dedupe(r.SkillsAnalysis.Technical, MaxTechnicalItems)
	r.SkillsAnalysis.Soft = Dedupe(r.SkillsAnalysis.Soft, MaxSkillItems)
	r.SkillsAnalysis.Tools = Dedupe(r.SkillsAnalysis.Tools, MaxSkillItems)
	r.SkillsAnalysis.Missing = Dedupe(r.SkillsAnalysis.Missing, MaxMissingSkills)

	r.ATSOptimization.Score = clamp(r.ATSOptimization.Score, 0, 100)
	r.ATSOptimization.RecommendedKeywords = Dedupe(r.ATSOptimization.RecommendedKeywords, 0)
}

// Validate checks the invariants every response body must satisfy.
func (r *AnalysisResult) Validate() error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("overallScore %d out of range", r.OverallScore)
	}
	if r.Grade != GradeFor(r.OverallScore) {
		return fmt.Errorf("grade %q does not match score %d", r.Grade, r.OverallScore)
	}
	lists := map[string][]string{
		"strengths":                           r.Strengths,
		"weaknesses":                          r.Weaknesses,
		"recommendations":                     r.Recommendations,
		"suggestedJobTitles":                  r.SuggestedJobTitles,
		"skillsAnalysis.technical":            r.SkillsAnalysis.Technical,
		"skillsAnalysis.soft":                 r.SkillsAnalysis.Soft,
		"skillsAnalysis.tools":                r.SkillsAnalysis.Tools,
		"skillsAnalysis.missing":              r.SkillsAnalysis.Missing,
		"atsOptimization.recommendedKeywords": r.ATSOptimization.RecommendedKeywords,
	}
	for name, list := range lists {
		if list == nil {
			return fmt.Errorf("%s is missing", name)
		}
	}
	if len(r.Strengths) > MaxFeedbackItems || len(r.Weaknesses) > MaxFeedbackItems {
		return fmt.Errorf("strengths/weaknesses exceed %d items", MaxFeedbackItems)
	}
	for _, name := range SectionNames {
		section := r.SectionsAnalysis.Section(name)
		if section.Score < 0 || section.Score > 10 {
			return fmt.Errorf("sectionsAnalysis.%s.score %d out of range", name, section.Score)
		}
	}
	if r.ATSOptimization.Score < 0 || r.ATSOptimization.Score > 100 {
		return fmt.Errorf("atsOptimization.score %d out of range", r.ATSOptimization.Score)
	}
	if r.Metadata.Model == "" || r.Metadata.Provider == "" || r.Metadata.AnalyzedAt.IsZero() {
		return fmt.Errorf("metadata is incomplete")
	}
	return nil
}

// Dedupe trims items, drops blanks and case-insensitive repeats, and keeps at most limit items (0 means no limit).
func Dedupe(items []string, limit int) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
