package langdetect

import "context"

type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Go         Language = "go"
	Ruby       Language = "ruby"
	Unknown    Language = "unknown"
)

// every language a snippet can be classified as, in tie-break order
var Supported = []Language{TypeScript, JavaScript, Python, Java, CSharp, Go, Ruby}

// result of classifying a code snippet
type Info struct {
	Language      Language `json:"language"`
	Framework     string   `json:"framework"`
	DisplayName   string   `json:"displayName"`
	FileExtension string   `json:"fileExtension,omitempty"`
}

// classifies a code snippet
type Detector interface {
	Detect(ctx context.Context, code string) (Info, error)
}

// metadata used when generating tests for a language
type profile struct {
	framework   string
	displayName string
	extension   string
}

var profiles = map[Language]profile{
	TypeScript: {"Jest", "TypeScript", ".test.ts"},
	JavaScript: {"Jest", "JavaScript", ".test.js"},
	Python:     {"pytest", "Python", "_test.py"},
	Java:       {"JUnit 5", "Java", "Test.java"},
	CSharp:     {"xUnit", "C#", ".Tests.cs"},
	Go:         {"testing", "Go", "_test.go"},
	Ruby:       {"RSpec", "Ruby", "_spec.rb"},
	Unknown:    {"Unknown", "Unknown", ""},
}

// returns the full info for a language using the built-in metadata
func InfoFor(lang Language) Info {
	p, ok := profiles[lang]
	if !ok {
		lang, p = Unknown, profiles[Unknown]
	}

	return Info{
		Language:      lang,
		Framework:     p.framework,
		DisplayName:   p.displayName,
		FileExtension: p.extension,
	}
}

// parses a language name, reporting whether it is known
func ParseLanguage(raw string) (Language, bool) {
	lang := Language(raw)
	if lang == Unknown {
		return Unknown, true
	}

	_, ok := profiles[lang]

	return lang, ok
}
