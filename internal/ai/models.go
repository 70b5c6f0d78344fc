package ai

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "anthropic" | "openai"
	APIKey   string
	Model    string
}

// DraftRequest describes the article the editorial team wants drafted.
type DraftRequest struct {
	Destination string `json:"destination"`
	Topic       string `json:"topic"`
	Tone        string `json:"tone,omitempty"`
	TargetWords int    `json:"target_words,omitempty"`
}

// Draft is a generated article draft. Body is HTML so the generated piece
// carries the headings and images the content analyzer expects.
type Draft struct {
	Title    string `json:"title"`
	BodyHTML string `json:"body_html"`
}

// TranslateRequest describes one article translation.
type TranslateRequest struct {
	Locale string `json:"locale"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Translated holds the localized title and body returned by the provider.
type Translated struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
