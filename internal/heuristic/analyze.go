// Package heuristic is the rule-based CV analyzer used when no AI model answers.
package heuristic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fadilmartias/cv-analyzer-pro/internal/model"
	"github.com/fadilmartias/cv-analyzer-pro/internal/util"
)

const (
	EngineName     = "Smart Rule-based Engine"
	EngineProvider = "CV Analyzer Pro"
)

var (
	emailExpr       = regexp.MustCompile(`[\w.%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneExpr       = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{2,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{3,4}`)
	linkedInExpr    = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9-]+`)
	gitHubExpr      = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9-]+`)
	achievementExpr = regexp.MustCompile(`(?i)\d+%|\d+\s*(increase|decrease|growth|improved|reduced)`)
	actionVerbExpr  = regexp.MustCompile(`(?i)(developed|created|implemented|managed|led|improved|increased|reduced|designed|built)`)
)

type contact struct {
	email    bool
	phone    bool
	linkedIn bool
	gitHub   bool
}

type skills struct {
	technical []string
	tools     []string
	soft      []string
	missing   []string
}

// count is the number of technical and tool skills found, before display caps.
func (s skills) count() int {
	return len(s.technical) + len(s.tools)
}

// Analyze scores text with fixed rules. It is total: any input yields a valid result.
func Analyze(text model.ExtractedText, now time.Time) model.AnalysisResult {
	raw := text.Text
	lower := strings.ToLower(raw)

	c := contact{
		email:    emailExpr.MatchString(raw),
		phone:    phoneExpr.MatchString(raw),
		linkedIn: linkedInExpr.MatchString(raw),
		gitHub:   gitHubExpr.MatchString(raw),
	}
	r := inferRole(lower)
	found := extractSkills(lower, r)
	sections := detectSections(lower, c)
	wordCount := util.WordCount(raw)
	hasAchievements := achievementExpr.MatchString(raw)
	hasActionVerbs := actionVerbExpr.MatchString(raw)
	languages := countLanguages(lower)
	skillCount := found.count()

	score := 50
	score += points(c.email, 10) + points(c.phone, 5) + points(c.linkedIn, 3) + points(c.gitHub, 2)
	for _, t := range wordTiers {
		if wordCount > t.min {
			score += t.points
		}
	}
	score += points(hasAchievements, 10) + points(hasActionVerbs, 5)
	for _, name := range model.SectionNames {
		score += points(sections[name], sectionWeights[name])
	}
	score += highestTier(skillTiers, skillCount)
	score += highestTier(languageTiers, languages)
	score = min(max(score, 0), 100)
	grade := model.GradeFor(score)

	var strengths, weaknesses []string
	if c.email {
		strengths = append(strengths, "Professional email address included")
	}
	if c.phone {
		strengths = append(strengths, "Phone number provided")
	}
	if c.linkedIn {
		strengths = append(strengths, "LinkedIn profile included")
	}
	if skillCount >= 8 {
		strengths = append(strengths, fmt.Sprintf("Strong technical skills (%d+ skills)", skillCount))
	}
	if hasAchievements {
		strengths = append(strengths, "Includes measurable achievements")
	}
	if languages >= 2 {
		strengths = append(strengths, fmt.Sprintf("Multilingual (%d languages)", languages))
	}

	if !c.email {
		weaknesses = append(weaknesses, "Add professional email address")
	}
	if !c.phone {
		weaknesses = append(weaknesses, "Add phone number for direct contact")
	}
	if !c.linkedIn {
		weaknesses = append(weaknesses, "Include LinkedIn profile URL")
	}
	if skillCount < 5 {
		weaknesses = append(weaknesses, "Add more technical skills")
	}
	if !hasAchievements {
		weaknesses = append(weaknesses, "Quantify achievements with numbers/percentages")
	}
	if wordCount < 300 {
		weaknesses = append(weaknesses, "Add more detail about responsibilities")
	}
	if len(strengths) == 0 {
		strengths = []string{"Good overall structure", "Clear sections"}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"Add more specific details"}
	}

	var matched, recommended []string
	for _, kw := range r.atsKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		} else if len(recommended) < 8 {
			recommended = append(recommended, kw)
		}
	}
	atsScore := min(50+10*len(matched), 95)

	result := model.AnalysisResult{
		OverallScore:       score,
		Grade:              grade,
		Summary:            summarize(r.name, skillCount, sections[model.SectionExperience], grade),
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		SectionsAnalysis:   sectionsAnalysis(sections, c),
		SkillsAnalysis:     model.SkillsAnalysis{Technical: found.technical, Soft: found.soft, Tools: found.tools, Missing: found.missing},
		ATSOptimization:    model.ATSOptimization{Score: atsScore, Feedback: atsFeedback(atsScore), RecommendedKeywords: recommended, MatchedKeywords: matched},
		DetailedFeedback:   detailedFeedback(c, sections, hasAchievements, skillCount),
		Recommendations:    recommendations(found.missing),
		SuggestedJobTitles: append([]string{r.name}, r.relatedTitles...),
		IndustryFit:        append([]string(nil), industryFit...),
		Metadata: model.AnalysisMetadata{
			Model:        EngineName,
			Provider:     EngineProvider,
			AnalyzedAt:   now.UTC(),
			WordCount:    wordCount,
			HasEmail:     c.email,
			HasPhone:     c.phone,
			SkillCount:   skillCount,
			HasLinkedIn:  c.linkedIn,
			DetectedRole: r.name,
		},
	}
	switch {
	case wordCount > 500:
		result.EstimatedExperienceLevel, result.SalaryRange = "2-4 years", "$50,000 - $75,000"
	case wordCount > 300:
		result.EstimatedExperienceLevel, result.SalaryRange = "1-3 years", "$40,000 - $60,000"
	default:
		result.EstimatedExperienceLevel, result.SalaryRange = "Entry-level", "$30,000 - $50,000"
	}

	result.Normalize()
	return result
}

func inferRole(lower string) role {
	for _, r := range roles {
		for _, trigger := range r.triggers {
			if strings.Contains(lower, trigger) {
				return r
			}
		}
	}
	return roles[len(roles)-1]
}

func extractSkills(lower string, r role) skills {
	var s skills
	for _, category := range skillCategories {
		for _, skill := range category.skills {
			if !strings.Contains(lower, skill) {
				continue
			}
			display := capitalize(skill)
			switch category.kind {
			case kindTechnical:
				s.technical = append(s.technical, display)
			case kindTool:
				s.tools = append(s.tools, display)
			case kindSoft:
				s.soft = append(s.soft, display)
			}
		}
	}

	// An expected skill counts as covered when any found skill contains its first word.
	have := make([]string, 0, s.count())
	for _, skill := range append(append([]string(nil), s.technical...), s.tools...) {
		have = append(have, strings.ToLower(skill))
	}
	for _, expected := range r.expected {
		firstWord := strings.ToLower(strings.Fields(expected)[0])
		covered := false
		for _, h := range have {
			if strings.Contains(h, firstWord) {
				covered = true
				break
			}
		}
		if !covered {
			s.missing = append(s.missing, expected)
		}
	}
	return s
}

func detectSections(lower string, c contact) map[string]bool {
	present := map[string]bool{model.SectionContact: c.email || c.phone}

	langs := make([]string, 0, len(sectionSynonyms))
	for lang := range sectionSynonyms {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		for section, synonyms := range sectionSynonyms[lang] {
			if present[section] {
				continue
			}
			for _, synonym := range synonyms {
				if strings.Contains(lower, synonym) {
					present[section] = true
					break
				}
			}
		}
	}
	return present
}

// countLanguages counts distinct spoken languages named in the text.
func countLanguages(lower string) int {
	n := 0
	for _, lang := range spokenLanguages {
		if strings.Contains(lower, lang) {
			n++
		}
	}
	return n
}

func sectionsAnalysis(present map[string]bool, c contact) model.SectionsAnalysis {
	var out model.SectionsAnalysis
	for _, name := range model.SectionNames {
		fb := sectionFeedback[name]
		entry := out.Section(name)
		entry.Present = present[name]
		if entry.Present {
			entry.Score, entry.Feedback = fb.presentScore, fb.present
		} else {
			entry.Score, entry.Feedback = fb.absentScore, fb.absent
		}
	}
	if out.Contact.Present && !(c.email && c.phone) {
		out.Contact.Score = 7
	}
	return out
}

func summarize(roleName string, skillCount int, hasExperience bool, grade string) string {
	experience := "Could use more experience details."
	if hasExperience {
		experience = "Includes relevant experience."
	}
	verdict := "Needs some improvements."
	if grade == model.GradeA || grade == model.GradeAPlus {
		verdict = "Well-structured and professional."
	}
	return fmt.Sprintf("A %s CV with %d+ technical skills. %s %s", roleName, skillCount, experience, verdict)
}

func atsFeedback(score int) string {
	switch {
	case score > 80:
		return "Good ATS optimization"
	case score > 60:
		return "Average ATS optimization"
	default:
		return "Needs better keyword optimization"
	}
}

func detailedFeedback(c contact, sections map[string]bool, hasAchievements bool, skillCount int) []string {
	check := func(ok bool, good, bad string) string {
		if ok {
			return "✅ " + good
		}
		return "❌ " + bad
	}
	skillLine := fmt.Sprintf("⚠️ Add more skills (currently %d)", skillCount)
	if skillCount >= 8 {
		skillLine = fmt.Sprintf("✅ Strong skills (%d skills)", skillCount)
	}
	return []string{
		check(c.email, "Professional email found", "Add email address"),
		check(c.phone, "Phone number found", "Add phone number"),
		check(sections[model.SectionEducation], "Education section present", "Add education details"),
		check(sections[model.SectionExperience], "Experience section present", "Add work experience"),
		check(hasAchievements, "Quantified achievements", "Add more numbers/percentages"),
		skillLine,
	}
}

func recommendations(missing []string) []string {
	recs := []string{
		"Add LinkedIn and GitHub profiles",
		"Use bullet points for better readability",
		"Quantify achievements with specific numbers",
	}
	if len(missing) > 0 {
		recs = append(recs, "Add missing skills: "+strings.Join(missing[:min(len(missing), 3)], ", "))
	}
	return append(recs,
		"Include a professional summary at the top",
		"Use consistent formatting throughout",
	)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func points(ok bool, n int) int {
	if ok {
		return n
	}
	return 0
}

// highestTier returns the points of the first tier whose minimum v reaches.
func highestTier(tiers []tier, v int) int {
	for _, t := range tiers {
		if v >= t.min {
			return t.points
		}
	}
	return 0
}
