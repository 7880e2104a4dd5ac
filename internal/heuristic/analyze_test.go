package heuristic

import (
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func extracted(text string) model.ExtractedText {
	return model.NewExtractedText(util.CleanText(text), model.SourcePlainText)
}

func TestAnalyzePlainProse(t *testing.T) {
	// 120 words with no contact details, headings or skill keywords beyond the letter c.
	text := strings.Repeat("The cat sat on the mat near a tree. ", 13) + "The end now."
	require.Equal(t, 120, util.WordCount(text))

	got := Analyze(extracted(text), now)

	require.NoError(t, got.Validate())
	assert.Equal(t, 50, got.OverallScore)
	assert.Equal(t, model.GradeC, got.Grade)
	require.NotEmpty(t, got.Weaknesses)
	assert.Equal(t, "Add professional email address", got.Weaknesses[0])
	assert.Len(t, got.Weaknesses, model.MaxFeedbackItems)
	assert.Equal(t, []string{"Good overall structure", "Clear sections"}, got.Strengths)
	assert.Equal(t, defaultRole, got.Metadata.DetectedRole)
	assert.Equal(t, EngineName, got.Metadata.Model)
	assert.Equal(t, EngineProvider, got.Metadata.Provider)
	assert.Equal(t, now, got.Metadata.AnalyzedAt)
	assert.Equal(t, 50, got.ATSOptimization.Score)
	assert.Equal(t, "Entry-level", got.EstimatedExperienceLevel)
	for _, name := range model.SectionNames {
		assert.False(t, got.SectionsAnalysis.Section(name).Present, name)
	}
}

func TestAnalyzeContactAndExperience(t *testing.T) {
	text := `Jane Doe
jane.doe@example.com
+1 555-123-4567
Experience
Backend engineer at Acme`

	got := Analyze(extracted(text), now)

	require.NoError(t, got.Validate())
	assert.True(t, got.SectionsAnalysis.Contact.Present)
	assert.Equal(t, 10, got.SectionsAnalysis.Contact.Score)
	assert.True(t, got.SectionsAnalysis.Experience.Present)
	assert.Greater(t, got.OverallScore, 50)
	assert.True(t, got.Metadata.HasEmail)
	assert.True(t, got.Metadata.HasPhone)
	assert.Contains(t, got.Strengths, "Professional email address included")
}

func TestAnalyzeScoreIsClamped(t *testing.T) {
	text := `Summary
Senior engineer. jane@example.com +1 555-123-4567 linkedin.com/in/jane github.com/jane
Education: Master degree in computer science
Experience: developed and led platform work, improved latency by 40% and 3 increase in revenue
Skills: javascript python java typescript react node docker kubernetes aws postgresql redis git jira figma
Languages: English, French, Arabic, Spanish
Projects: portfolio of open source software and web application code with a public api
` + strings.Repeat("Delivered reliable services for many teams across regions. ", 80)

	got := Analyze(extracted(text), now)

	require.NoError(t, got.Validate())
	assert.Equal(t, 100, got.OverallScore)
	assert.Equal(t, model.GradeAPlus, got.Grade)
	assert.LessOrEqual(t, len(got.SkillsAnalysis.Technical), model.MaxTechnicalItems)
	assert.LessOrEqual(t, len(got.SkillsAnalysis.Tools), model.MaxSkillItems)
	assert.Equal(t, "2-4 years", got.EstimatedExperienceLevel)
	assert.Equal(t, 95, got.ATSOptimization.Score)
	assert.True(t, got.Metadata.HasLinkedIn)
}

func TestAnalyzeEmptyTextIsTotal(t *testing.T) {
	got := Analyze(model.ExtractedText{}, now)
	require.NoError(t, got.Validate())
	assert.Equal(t, 50, got.OverallScore)
}

func TestInferRole(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{name: "default", text: "backend engineer", want: "Software Developer"},
		{name: "marketing", text: "digital campaigns", want: "Digital Marketer"},
		{name: "data", text: "data pipelines", want: "Data Analyst"},
		{name: "design wins over data and marketing", text: "data analyst doing marketing and design", want: "UI/UX Designer"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inferRole(tc.text).name)
		})
	}
}

func TestExtractSkillsMissing(t *testing.T) {
	found := extractSkills("react node git", inferRole("react node git"))

	assert.Contains(t, found.technical, "React")
	assert.Contains(t, found.technical, "Node")
	assert.Contains(t, found.tools, "Git")
	// Coverage matches on the first word of the expected skill, so "Node" does not cover "Node.js".
	assert.Equal(t, []string{"Node.js", "REST API", "Testing"}, found.missing)
}

func TestDetectSectionsFrench(t *testing.T) {
	got := detectSections(strings.ToLower("À PROPOS\nFormation\nExpérience\nCompétences\nProjets"), contact{})
	for _, name := range []string{model.SectionSummary, model.SectionEducation, model.SectionExperience, model.SectionSkills, model.SectionProjects} {
		assert.True(t, got[name], name)
	}
	assert.False(t, got[model.SectionContact])
}
