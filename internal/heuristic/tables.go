package heuristic

import "github.com/fadilmartias/cv-analyzer-pro/internal/model"

type skillKind int

const (
	kindTechnical skillKind = iota
	kindTool
	kindSoft
)

type skillCategory struct {
	name   string
	kind   skillKind
	skills []string
}

// Scanned in order. "git" appears under devops and tools on purpose: it counts once in each list.
var skillCategories = []skillCategory{
	{"programming", kindTechnical, []string{"javascript", "python", "java", "php", "c", "c++", "c#", "ruby", "go", "swift", "kotlin", "typescript"}},
	{"web", kindTechnical, []string{"html", "css", "react", "angular", "vue", "node", "express", "django", "flask", "laravel", "bootstrap"}},
	{"database", kindTechnical, []string{"mysql", "postgresql", "mongodb", "oracle", "sql", "nosql", "redis", "firebase"}},
	{"devops", kindTechnical, []string{"docker", "kubernetes", "aws", "azure", "gcp", "jenkins", "git", "github", "gitlab", "linux"}},
	{"tools", kindTool, []string{"git", "vscode", "intellij", "eclipse", "photoshop", "figma", "jira", "confluence"}},
	{"soft", kindSoft, []string{"communication", "teamwork", "leadership", "problem solving", "creativity", "adaptability"}},
}

type role struct {
	name          string
	triggers      []string
	expected      []string
	atsKeywords   []string
	relatedTitles []string
}

const defaultRole = "Software Developer"

// Checked in order, first role with a matching trigger wins.
var roles = []role{
	{
		name:          "UI/UX Designer",
		triggers:      []string{"design", "ui/ux"},
		expected:      []string{"Figma", "Adobe XD", "Wireframing", "Prototyping", "User Research"},
		atsKeywords:   []string{"design", "ui", "ux", "user experience", "wireframe", "prototype", "figma", "adobe xd"},
		relatedTitles: []string{"UI Designer", "UX Designer", "Product Designer", "Visual Designer"},
	},
	{
		name:          "Data Analyst",
		triggers:      []string{"data", "analyst"},
		expected:      []string{"Python", "SQL", "Excel", "Tableau", "Statistics"},
		atsKeywords:   []string{"data", "analysis", "analytics", "sql", "python", "visualization", "reporting", "statistics"},
		relatedTitles: []string{"Business Analyst", "Data Scientist", "BI Analyst", "Marketing Analyst"},
	},
	{
		name:          "Digital Marketer",
		triggers:      []string{"marketing", "digital"},
		expected:      []string{"SEO", "Google Analytics", "Social Media", "Content Strategy", "Email Marketing"},
		atsKeywords:   []string{"marketing", "digital", "strategy", "content", "social media", "seo", "analytics", "campaign"},
		relatedTitles: []string{"Marketing Specialist", "Content Marketer", "Social Media Manager", "SEO Specialist"},
	},
	{
		name:          defaultRole,
		expected:      []string{"React", "Node.js", "Git", "REST API", "Testing"},
		atsKeywords:   []string{"software", "development", "programming", "web", "application", "code", "database", "api"},
		relatedTitles: []string{"Web Developer", "Full Stack Developer", "Backend Developer", "Frontend Developer"},
	},
}

// sectionSynonyms holds heading keywords per language. A section is present when
// any synonym in any language occurs in the text, case-insensitively.
var sectionSynonyms = map[string]map[string][]string{
	"en": {
		model.SectionSummary:    {"summary", "about", "profile"},
		model.SectionEducation:  {"education", "diploma", "degree", "master"},
		model.SectionExperience: {"experience", "work", "employment", "internship"},
		model.SectionSkills:     {"skills", "technologies", "technical"},
		model.SectionProjects:   {"projects", "portfolio"},
	},
	"fr": {
		model.SectionSummary:    {"à propos", "objectif"},
		model.SectionEducation:  {"formation", "baccalauréat", "licence"},
		model.SectionExperience: {"stage", "emploi", "expérience"},
		model.SectionSkills:     {"compétences"},
		model.SectionProjects:   {"projets"},
	},
}

// Points awarded per present section.
var sectionWeights = map[string]int{
	model.SectionContact:    10,
	model.SectionSummary:    5,
	model.SectionEducation:  10,
	model.SectionExperience: 15,
	model.SectionSkills:     10,
	model.SectionProjects:   5,
}

type sectionCopy struct {
	presentScore int
	absentScore  int
	present      string
	absent       string
}

var sectionFeedback = map[string]sectionCopy{
	model.SectionContact:    {10, 3, "Contact info present", "Add contact section"},
	model.SectionSummary:    {8, 4, "Professional summary included", "Add summary section"},
	model.SectionEducation:  {9, 4, "Education detailed", "Add education"},
	model.SectionExperience: {9, 4, "Experience included", "Add work experience"},
	model.SectionSkills:     {8, 4, "Skills listed", "Add skills section"},
	model.SectionProjects:   {7, 3, "Projects showcased", "Consider adding projects"},
}

var spokenLanguages = []string{"arabic", "french", "english", "spanish", "german", "chinese", "japanese"}

var industryFit = []string{"Technology", "Software", "IT Services", "Digital"}

type tier struct {
	min    int
	points int
}

// Cumulative: every tier whose threshold is exceeded adds its points.
var wordTiers = []tier{{300, 10}, {500, 5}, {700, 5}}

// Exclusive: only the highest reached tier counts.
var (
	skillTiers    = []tier{{10, 15}, {7, 10}, {5, 5}}
	languageTiers = []tier{{3, 5}, {2, 3}}
)
