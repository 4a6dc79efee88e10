package config

import "fmt"

const (
	envLLMProvider = "LLM_PROVIDER"

	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"

	envOpenAIAPIKey  = "OPENAI_API_KEY"
	envOpenAIModel   = "OPENAI_MODEL"
	envOpenAIBaseURL = "OPENAI_BASE_URL"
	envGeminiAPIKey  = "GEMINI_API_KEY"
	envGeminiModel   = "GEMINI_MODEL"
)

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI compatible endpoint. Optional.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// LoadLLMProvider returns "openai" (default) or "gemini".
func LoadLLMProvider() (string, error) {
	switch provider := getenvLower(envLLMProvider); provider {
	case "", LLMProviderOpenAI:
		return LLMProviderOpenAI, nil
	case LLMProviderGemini:
		return provider, nil
	default:
		return "", fmt.Errorf("config: unsupported %s %q", envLLMProvider, provider)
	}
}

func LoadOpenAIConfigFromEnv() (*OpenAIConfig, error) {
	key, model, err := loadModelCredentials(envOpenAIAPIKey, envOpenAIModel, DefaultOpenAIModel)
	if err != nil {
		return nil, err
	}
	return &OpenAIConfig{APIKey: key, Model: model, BaseURL: getenv(envOpenAIBaseURL)}, nil
}

func LoadGeminiConfigFromEnv() (*GeminiConfig, error) {
	key, model, err := loadModelCredentials(envGeminiAPIKey, envGeminiModel, DefaultGeminiModel)
	if err != nil {
		return nil, err
	}
	return &GeminiConfig{APIKey: key, Model: model}, nil
}

// loadModelCredentials requires the key variable and falls back to
// fallbackModel when the model variable is blank.
func loadModelCredentials(keyVar, modelVar, fallbackModel string) (string, string, error) {
	key := getenv(keyVar)
	if key == "" {
		return "", "", fmt.Errorf("config: %s is not set", keyVar)
	}
	model := getenv(modelVar)
	if model == "" {
		model = fallbackModel
	}
	return key, model, nil
}
