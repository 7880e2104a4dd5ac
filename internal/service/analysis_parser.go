package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/tidwall/gjson"
)

var (
	ErrMalformedAnalysis = errors.New("malformed analysis JSON")
	ErrAnalysisSchema    = errors.New("analysis does not match schema")

	jsonObjectExpr = regexp.MustCompile(`(?s)\{.*\}`)
)

var requiredArrays = []string{"strengths", "weaknesses", "recommendations", "suggestedJobTitles"}

var requiredObjects = []string{"sectionsAnalysis", "skillsAnalysis", "atsOptimization"}

// ParseAnalysis validates a model reply against the AnalysisResult schema and coerces it.
// Prose or code fences around the JSON object are ignored. Metadata is left for the caller.
func ParseAnalysis(content string) (model.AnalysisResult, error) {
	raw := jsonObjectExpr.FindString(content)
	if raw == "" || !gjson.Valid(raw) {
		return model.AnalysisResult{}, ErrMalformedAnalysis
	}
	doc := gjson.Parse(raw)

	score, err := number(doc.Get("overallScore"))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: overallScore %v", ErrAnalysisSchema, err)
	}
	summary := doc.Get("summary")
	if summary.Type != gjson.String {
		return model.AnalysisResult{}, fmt.Errorf("%w: summary must be a string", ErrAnalysisSchema)
	}
	for _, key := range requiredArrays {
		if !doc.Get(key).IsArray() {
			return model.AnalysisResult{}, fmt.Errorf("%w: %s must be an array", ErrAnalysisSchema, key)
		}
	}
	for _, key := range requiredObjects {
		if !doc.Get(key).IsObject() {
			return model.AnalysisResult{}, fmt.Errorf("%w: %s must be an object", ErrAnalysisSchema, key)
		}
	}
	atsScore, err := number(doc.Get("atsOptimization.score"))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: atsOptimization.score %v", ErrAnalysisSchema, err)
	}

	result := model.AnalysisResult{
		OverallScore:       score,
		Summary:            summary.String(),
		Strengths:          stringList(doc.Get("strengths")),
		Weaknesses:         stringList(doc.Get("weaknesses")),
		Recommendations:    stringList(doc.Get("recommendations")),
		SuggestedJobTitles: stringList(doc.Get("suggestedJobTitles")),
		SkillsAnalysis: model.SkillsAnalysis{
			Technical: stringList(doc.Get("skillsAnalysis.technical")),
			Soft:      stringList(doc.Get("skillsAnalysis.soft")),
			Tools:     stringList(doc.Get("skillsAnalysis.tools")),
			Missing:   stringList(doc.Get("skillsAnalysis.missing")),
		},
		ATSOptimization: model.ATSOptimization{
			Score:               atsScore,
			Feedback:            doc.Get("atsOptimization.feedback").String(),
			RecommendedKeywords: stringList(doc.Get("atsOptimization.recommendedKeywords")),
		},
		EstimatedExperienceLevel: doc.Get("estimatedExperienceLevel").String(),
		SalaryRange:              doc.Get("salaryRange").String(),
	}
	if v := doc.Get("detailedFeedback"); v.IsArray() {
		result.DetailedFeedback = stringList(v)
	}
	if v := doc.Get("industryFit"); v.IsArray() {
		result.IndustryFit = stringList(v)
	}

	sections := doc.Get("sectionsAnalysis")
	for _, name := range model.SectionNames {
		*result.SectionsAnalysis.Section(name) = section(sections.Get(name))
	}

	result.Normalize()
	return result, nil
}

// number accepts a JSON number or a numeric string and rounds it to an int.
func number(v gjson.Result) (int, error) {
	switch v.Type {
	case gjson.Number:
		return int(math.Round(v.Float())), nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, fmt.Errorf("is not numeric: %q", v.String())
		}
		return int(math.Round(f)), nil
	case gjson.Null:
		if !v.Exists() {
			return 0, errors.New("is missing")
		}
	}
	return 0, fmt.Errorf("has unexpected type %s", v.Type)
}

func stringList(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// section reads one sectionsAnalysis entry; an absent entry becomes a not-present section.
func section(v gjson.Result) model.SectionAnalysis {
	if !v.IsObject() {
		return model.SectionAnalysis{Present: false, Score: 0, Feedback: "Section not found"}
	}
	score, _ := number(v.Get("score"))
	return model.SectionAnalysis{
		Present:  v.Get("present").Bool(),
		Score:    score,
		Feedback: v.Get("feedback").String(),
	}
}
