package ai

import "fmt"

const simplifySystemPrompt = "Rewrite the text in clear, simple, plain English. " +
	"Return ONLY the final cleaned version."

// BuildDetectLanguagePrompt builds the single-turn prompt used to detect
// the language of a transcript
func BuildDetectLanguagePrompt(text string) string {
	return fmt.Sprintf("Detect language and return ONLY the language name: %s", text)
}

// BuildTranslatePrompt builds the single-turn prompt used to translate a
// transcript into plain English
func BuildTranslatePrompt(text string) string {
	return fmt.Sprintf("Translate to very simple, plain English. Return ONLY the translation:\n\n%s", text)
}

// BuildSimplifyPrompt returns the system and user prompts used to rewrite
// English text in simpler English
func BuildSimplifyPrompt(text string) (string, string) {
	return simplifySystemPrompt, text
}
