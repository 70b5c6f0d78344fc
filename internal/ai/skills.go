package ai

import (
	"fmt"
	"strings"
)

const draftSystemPromptTmpl = `You are a travel writer for a destination marketing site. Write an engaging, factually grounded article about the requested destination and topic. The article should be roughly %d words, use a %s tone, and be structured as HTML: an opening paragraph, several <h2> sections, and <p> paragraphs. Do not invent prices or opening hours. Return ONLY valid JSON: an object with "title" (the article headline) and "body_html" (the article body as an HTML string). Do not wrap the JSON in markdown fences.`

const translateSystemPromptTmpl = `You are a professional translator for a travel publication. Translate the following article title and body into %s. Preserve any HTML markup exactly, translate only the human-readable text, and keep place names in their commonly used local form. Return ONLY valid JSON: an object with "title" and "body" holding the translated text. Do not wrap the JSON in markdown fences.`

const defaultDraftWords = 900

// DraftPrompt builds the system and user prompts for the article drafting
// operation.
func DraftPrompt(req DraftRequest) (systemPrompt string, userPrompt string) {
	words := req.TargetWords
	if words <= 0 {
		words = defaultDraftWords
	}
	tone := req.Tone
	if tone == "" {
		tone = "warm, informative"
	}
	systemPrompt = fmt.Sprintf(draftSystemPromptTmpl, words, tone)

	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}

// TranslatePrompt builds the system and user prompts for the article
// translation operation.
func TranslatePrompt(req TranslateRequest) (systemPrompt string, userPrompt string) {
	systemPrompt = fmt.Sprintf(translateSystemPromptTmpl, localeName(req.Locale))

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	b.WriteString("Body:\n")
	b.WriteString(req.Body)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}

// localeName maps the locale codes the site publishes in to language names
// the model responds to more reliably. Unknown codes pass through as-is.
func localeName(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en":
		return "English"
	case "ar":
		return "Arabic"
	case "de":
		return "German"
	case "fr":
		return "French"
	case "es":
		return "Spanish"
	}
	return locale
}

// extractJSON strips markdown code fences from a string that may contain
// JSON wrapped in ```json ... ``` or ``` ... ``` blocks. This handles the
// common case where LLMs return JSON inside code fences.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Try ```json ... ``` first.
	if after, found := strings.CutPrefix(s, "```json"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	// Try plain ``` ... ```.
	if after, found := strings.CutPrefix(s, "```"); found {
		if idx := strings.LastIndex(after, "```"); idx >= 0 {
			after = after[:idx]
		}
		return strings.TrimSpace(after)
	}

	return s
}
