package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for SummarizeConfig and Quality:
// - properties: 3 key lines + 1 comment gives key_count 3
// - yaml: flat ':' rule counts parents and children alike
// - xml: tag and bean counts
// - interesting lines honour default and custom key lists
// - quality: line metrics, long-line threshold, Java counts, syntax check

// Test: properties key counting
func TestSummarizeConfig_Properties(t *testing.T) {
	t.Parallel()

	text := "server.port=8080\n# comment=ignored\nspring.datasource.url=jdbc:h2:mem\napp.name=demo\n"
	s := SummarizeConfig(text, ConfigProperties, nil)

	assert.Equal(t, ConfigProperties, s.Kind)
	assert.Equal(t, 3, s.KeyCount)
	assert.Equal(t, 5, s.Lines)
	assert.Equal(t, []string{"server.port=8080", "spring.datasource.url=jdbc:h2:mem"}, s.Interesting)
}

// Test: yaml is counted line by line
func TestSummarizeConfig_YAML(t *testing.T) {
	t.Parallel()

	text := "spring:\n  datasource:\n    url: jdbc:h2:mem\n# note: skipped\nplain line\n"
	s := SummarizeConfig(text, ConfigYAML, []string{"url"})

	assert.Equal(t, 3, s.KeyCount)
	assert.Equal(t, []string{"url: jdbc:h2:mem"}, s.Interesting)
}

// Test: xml counts
func TestSummarizeConfig_XML(t *testing.T) {
	t.Parallel()

	text := `<beans><bean id="a" class="A"/><bean id="b" class="B"></bean></beans>`
	s := SummarizeConfig(text, ConfigXML, nil)

	assert.Equal(t, 5, s.TagCount)
	// "<beans" also counts: the bean count is a substring proxy.
	assert.Equal(t, 3, s.BeanCount)
	assert.Equal(t, 0, s.KeyCount)
}

// Test: language to config kind
func TestLanguageConfigKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ConfigYAML, DetectLanguage("application.yml").ConfigKind())
	assert.Equal(t, ConfigYAML, DetectLanguage("a.YAML").ConfigKind())
	assert.Equal(t, ConfigProperties, DetectLanguage("application.properties").ConfigKind())
	assert.Equal(t, ConfigXML, DetectLanguage("pom.xml").ConfigKind())
	assert.Equal(t, ConfigKind(""), DetectLanguage("A.java").ConfigKind())
	assert.Equal(t, LangUnknown, DetectLanguage("README"))
	assert.Equal(t, LangJava, ParseLanguage(" Java "))
	assert.Equal(t, LangUnknown, ParseLanguage("cobol"))
}

// Test: quality metrics
func TestQuality(t *testing.T) {
	t.Parallel()

	long := "// " + strings.Repeat("x", 30)
	text := "@Service\npublic class A {\n\n    public void run() { }\n" + long + "\n}"

	q := Quality(text, LangJava, 20)
	assert.Equal(t, 6, q.TotalLines)
	assert.Equal(t, 5, q.NonEmptyLines)
	assert.InDelta(t, 5.0/6.0, q.CodeRatio, 1e-9)
	assert.Equal(t, len(long), q.MaxLineLength)
	assert.Equal(t, 2, q.LongLines)
	assert.Equal(t, 1, q.ClassCount)
	assert.Equal(t, 1, q.MethodCount)
	assert.Equal(t, 1, q.AnnotationCount)
	assert.Equal(t, 1, q.SpringAnnotationCount)
	assert.InDelta(t, 1.0, q.SpringRatio, 1e-9)
	if assert.NotNil(t, q.Syntax) {
		assert.True(t, q.Syntax.Valid)
	}

	plain := Quality("a\nb", LangYAML, 0)
	assert.Equal(t, 2, plain.TotalLines)
	assert.Nil(t, plain.Syntax)
	assert.Zero(t, plain.ClassCount)
}

// Test: syntax check messages
func TestValidateSyntax(t *testing.T) {
	t.Parallel()

	check := ValidateSyntax("class A { void m( { }")
	assert.False(t, check.Valid)
	assert.Equal(t, []string{"Mismatched braces", "Mismatched parentheses"}, check.Errors)

	check = ValidateSyntax(`class A { String s = "{("; }`)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Errors)
}
