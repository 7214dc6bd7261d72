package extract

import "strings"

// ConfigKind is the format of a configuration file.
type ConfigKind string

const (
	ConfigXML        ConfigKind = "xml"
	ConfigYAML       ConfigKind = "yaml"
	ConfigProperties ConfigKind = "properties"
)

// DefaultInterestingKeys are the key fragments whose lines are copied into a summary.
var DefaultInterestingKeys = []string{"spring", "server", "datasource", "jpa"}

// ConfigSummary is a line-oriented overview of a configuration file.
type ConfigSummary struct {
	Kind        ConfigKind `json:"type"`
	Lines       int        `json:"lines"`
	KeyCount    int        `json:"key_count"`
	Interesting []string   `json:"interesting,omitempty"`
	TagCount    int        `json:"tag_count,omitempty"`
	BeanCount   int        `json:"bean_count,omitempty"`
}

// SummarizeConfig counts keys without parsing the format.
//
// Properties and YAML are treated the same way: every trimmed line that contains the
// separator ('=' or ':') and does not start with '#' is a key. YAML nesting is not
// reconstructed, so a parent line such as "spring:" counts as a key of its own and nested
// keys are reported without their parents. XML is not parsed at all: the tag count is the
// number of '<' characters and the bean count the number of "<bean" occurrences.
// internal/configfile holds the format-aware parsers.
func SummarizeConfig(text string, kind ConfigKind, interestingKeys []string) ConfigSummary {
	if interestingKeys == nil {
		interestingKeys = DefaultInterestingKeys
	}
	summary := ConfigSummary{Kind: kind, Lines: len(strings.Split(text, "\n"))}

	switch kind {
	case ConfigXML:
		summary.TagCount = strings.Count(text, "<")
		summary.BeanCount = strings.Count(text, "<bean")
		return summary
	case ConfigProperties, ConfigYAML:
	default:
		return summary
	}

	sep := "="
	if kind == ConfigYAML {
		sep = ":"
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, sep) {
			continue
		}
		summary.KeyCount++
		lower := strings.ToLower(line)
		for _, key := range interestingKeys {
			if strings.Contains(lower, strings.ToLower(key)) {
				summary.Interesting = append(summary.Interesting, line)
				break
			}
		}
	}
	return summary
}
