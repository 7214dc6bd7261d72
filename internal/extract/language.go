package extract

import (
	"path/filepath"
	"strings"
)

// Language is the tag attached to a source unit, derived from its file extension.
type Language string

const (
	LangJava       Language = "java"
	LangXML        Language = "xml"
	LangYML        Language = "yml"
	LangYAML       Language = "yaml"
	LangProperties Language = "properties"
	LangGradle     Language = "gradle"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangUnknown    Language = "unknown"
)

var extensionLanguages = map[string]Language{
	".java":       LangJava,
	".xml":        LangXML,
	".yml":        LangYML,
	".yaml":       LangYAML,
	".properties": LangProperties,
	".gradle":     LangGradle,
	".py":         LangPython,
	".js":         LangJavaScript,
	".ts":         LangTypeScript,
}

// DetectLanguage maps a file path to its language tag.
func DetectLanguage(path string) Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return LangUnknown
}

// ParseLanguage normalizes a caller supplied language name. Unknown names map to LangUnknown.
func ParseLanguage(name string) Language {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, lang := range extensionLanguages {
		if string(lang) == name {
			return lang
		}
	}
	return LangUnknown
}

// IsConfig reports whether the language is one of the configuration formats.
func (l Language) IsConfig() bool {
	switch l {
	case LangXML, LangYML, LangYAML, LangProperties:
		return true
	}
	return false
}

// ConfigKind returns the config file kind for a config language.
func (l Language) ConfigKind() ConfigKind {
	switch l {
	case LangXML:
		return ConfigXML
	case LangYML, LangYAML:
		return ConfigYAML
	case LangProperties:
		return ConfigProperties
	}
	return ""
}

// SupportedExtensions lists the extensions the analyzers look at when walking directories.
func SupportedExtensions() []string {
	return []string{".java", ".xml", ".yml", ".yaml", ".properties", ".gradle", ".py", ".js", ".ts"}
}
