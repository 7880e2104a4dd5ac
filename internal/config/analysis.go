package config

import "sync"

type AnalysisConfig struct {
	MinTextChars int
	PreviewChars int
	AIInputChars int
}

var (
	analysisConfig *AnalysisConfig
	analysisOnce   sync.Once
)

func LoadAnalysisConfig() *AnalysisConfig {
	analysisOnce.Do(func() {
		analysisConfig = &AnalysisConfig{
			MinTextChars: getEnvAsInt("MIN_TEXT_CHARS", 100),
			PreviewChars: getEnvAsInt("PREVIEW_CHARS", 1000),
			AIInputChars: getEnvAsInt("AI_INPUT_CHARS", 3500),
		}
	})
	return analysisConfig
}
