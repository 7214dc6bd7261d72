package configfile

import (
	"os"
	"testing"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for configfile:
// - YAML nested maps flatten to dotted keys without collisions
// - YAML lists use [i] keys; multi-document files layer later documents over earlier ones
// - Duplicate YAML keys and malformed YAML are errors
// - Properties keep ${} placeholders and support ':' separators and continuations
// - Spring XML beans with properties; non-beans XML yields no beans
// - POM: coordinates, properties, parent, java and Spring Boot versions, profiles
// - Gradle: plugins, dependencies, java version, group/version
// - Gradle plugin forms: groovy and kotlin DSL, one-line blocks, apply plugin
// - Unsupported kinds are rejected

const fixtureRoot = "../../testdata/springapp/"

// Test: nested yaml is flattened
func TestParse_YAML(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(fixtureRoot + "src/main/resources/application.yml")
	require.NoError(t, err)

	cfg, err := Parse(extract.ConfigYAML, data)
	require.NoError(t, err)

	assert.Equal(t, extract.ConfigYAML, cfg.Kind)
	assert.Equal(t, 1, cfg.Documents)
	assert.Equal(t, "8080", cfg.Keys["server.port"])
	assert.Equal(t, "jdbc:postgresql://localhost:5432/demo", cfg.Keys["spring.datasource.url"])
	assert.Equal(t, "demo", cfg.Keys["spring.application.name"])
	assert.Equal(t, "update", cfg.Keys["spring.jpa.hibernate.ddl-auto"])
	assert.Equal(t, []string{"management", "server", "spring"}, cfg.TopLevel())

	v, ok := cfg.Get("spring.datasource.username")
	assert.True(t, ok)
	assert.Equal(t, "demo", v)

	ds := cfg.Matching([]string{"datasource"})
	assert.Len(t, ds, 2)
}

// Test: lists and documents
func TestParse_YAMLListsAndDocuments(t *testing.T) {
	t.Parallel()

	data := []byte(`app:
  hosts:
    - a.example.com
    - b.example.com
  empty: []
  nothing:
---
app:
  hosts:
    - c.example.com
spring:
  profiles: prod
`)
	cfg, err := Parse(extract.ConfigYAML, data)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Documents)
	assert.Equal(t, "c.example.com", cfg.Keys["app.hosts[0]"])
	assert.Equal(t, "b.example.com", cfg.Keys["app.hosts[1]"])
	assert.Equal(t, "", cfg.Keys["app.empty"])
	assert.Equal(t, "", cfg.Keys["app.nothing"])
	assert.Equal(t, "prod", cfg.Keys["spring.profiles"])
	assert.Equal(t, []string{"app.empty", "app.hosts[0]", "app.hosts[1]", "app.nothing", "spring.profiles"}, cfg.SortedKeys())
}

// Test: malformed yaml
func TestParse_YAMLErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse(extract.ConfigYAML, []byte("a: 1\na: 2\n"))
	assert.Error(t, err)

	_, err = Parse(extract.ConfigYAML, []byte("a: [1, 2\n"))
	assert.Error(t, err)

	cfg, err := Parse(extract.ConfigYAML, nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Keys)
}

// Test: properties parsing
func TestParse_Properties(t *testing.T) {
	t.Parallel()

	data := []byte("# comment\nserver.port=8081\napp.url=${base}/api\napp.name: demo\napp.long=one \\\n    two\n")
	cfg, err := Parse(extract.ConfigProperties, data)
	require.NoError(t, err)

	assert.Equal(t, extract.ConfigProperties, cfg.Kind)
	assert.Equal(t, map[string]string{
		"server.port": "8081",
		"app.url":     "${base}/api",
		"app.name":    "demo",
		"app.long":    "one two",
	}, cfg.Keys)
}

// Test: spring xml beans
func TestParse_Beans(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(fixtureRoot + "src/main/resources/beans.xml")
	require.NoError(t, err)

	cfg, err := Parse(extract.ConfigXML, data)
	require.NoError(t, err)
	require.Len(t, cfg.Beans, 2)
	assert.Equal(t, "clock", cfg.Beans[0].ID)
	assert.Equal(t, "java.time.Clock", cfg.Beans[0].Class)
	assert.Equal(t, "systemUTC", cfg.Beans[0].Factory)
	assert.Equal(t, []BeanProperty{{Name: "enabled", Value: "true"}}, cfg.Beans[1].Properties)

	nested := []byte(`<beans><beans profile="dev"><bean id="x" class="X"/></beans></beans>`)
	beans, err := ParseBeans(nested)
	require.NoError(t, err)
	require.Len(t, beans, 1)
	assert.Equal(t, "x", beans[0].ID)

	beans, err = ParseBeans([]byte(`<configuration><appender name="a"/></configuration>`))
	require.NoError(t, err)
	assert.Empty(t, beans)

	_, err = ParseBeans([]byte(`<beans><bean`))
	assert.Error(t, err)
}

// Test: pom model
func TestParsePOM(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(fixtureRoot + "pom.xml")
	require.NoError(t, err)

	pom, err := ParsePOM(data)
	require.NoError(t, err)

	assert.Equal(t, "com.example", pom.GroupID)
	assert.Equal(t, "demo", pom.ArtifactID)
	assert.Equal(t, "17", pom.JavaVersion())
	assert.Equal(t, "3.2.0", pom.SpringBootVersion())
	require.Len(t, pom.Dependencies, 6)
	assert.Equal(t, "org.springframework.boot:spring-boot-starter-web", pom.Dependencies[0].Coordinate())
	assert.Equal(t, "runtime", pom.Dependencies[3].Scope)
	assert.Equal(t, []Profile{{ID: "dev"}}, pom.Profiles)
}

// Test: property references
func TestPOM_Resolve(t *testing.T) {
	t.Parallel()

	pom, err := ParsePOM([]byte(`<project><version>1.2</version><properties><boot.version>3.1.0</boot.version><maven.compiler.source>${jdk}</maven.compiler.source><jdk>11</jdk></properties>
<dependencies><dependency><groupId>org.springframework.boot</groupId><artifactId>spring-boot-dependencies</artifactId><version>${boot.version}</version></dependency></dependencies></project>`))
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", pom.SpringBootVersion())
	assert.Equal(t, "11", pom.JavaVersion())
	assert.Equal(t, "v1.2 ${missing}", pom.Resolve("v${project.version} ${missing}"))

	_, err = ParsePOM([]byte("not xml"))
	assert.Error(t, err)
}

// Test: gradle build scripts
func TestParseGradle(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("../../testdata/gradleapp/build.gradle")
	require.NoError(t, err)

	b := ParseGradle(string(data))
	assert.Equal(t, "com.example", b.Group)
	assert.Equal(t, "1.0.0", b.Version)
	assert.Equal(t, "21", b.JavaVersion)
	assert.Equal(t, "3.1.5", b.SpringBootVersion())
	assert.Equal(t, []GradlePlugin{
		{ID: "java"},
		{ID: "org.springframework.boot", Version: "3.1.5"},
		{ID: "io.spring.dependency-management", Version: "1.1.3"},
	}, b.Plugins)
	assert.Equal(t, []string{
		"org.springframework.boot:spring-boot-starter-web",
		"org.springframework.boot:spring-boot-starter-security",
		"org.mapstruct:mapstruct:1.5.5.Final",
		"com.mysql:mysql-connector-j",
		"org.springframework.boot:spring-boot-starter-test",
		"org.testcontainers:junit-jupiter",
	}, b.Coordinates())
	assert.Equal(t, "runtimeOnly", b.Dependencies[3].Configuration)
}

// Test: kotlin dsl and legacy forms
func TestParseGradle_KotlinAndLegacy(t *testing.T) {
	t.Parallel()

	kts := `plugins {
    id("org.springframework.boot") version "3.2.1"
}
java { toolchain { languageVersion.set(JavaLanguageVersion.of(17)) } }
dependencies {
    implementation("org.springframework.boot:spring-boot-starter-webflux")
}`
	b := ParseGradle(kts)
	assert.Equal(t, "3.2.1", b.SpringBootVersion())
	assert.Equal(t, "17", b.JavaVersion)
	assert.Equal(t, []string{"org.springframework.boot:spring-boot-starter-webflux"}, b.Coordinates())

	legacy := "apply plugin: 'java'\nsourceCompatibility = 1.8\ncompile 'junit:junit:4.12'\n"
	b = ParseGradle(legacy)
	assert.Equal(t, "8", b.JavaVersion)
	assert.Equal(t, []GradlePlugin{{ID: "java"}}, b.Plugins)
	assert.Equal(t, []string{"junit:junit:4.12"}, b.Coordinates())
}

// Test: every plugin declaration form is matched
func TestParseGradle_Plugins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   []GradlePlugin
		boot   string
	}{
		{
			name: "groovy, version on the first plugin",
			script: "plugins {\n" +
				"    id 'org.springframework.boot' version '3.3.0'\n" +
				"    id 'io.spring.dependency-management' version '1.1.5'\n" +
				"    id 'java'\n" +
				"}\n",
			want: []GradlePlugin{
				{ID: "org.springframework.boot", Version: "3.3.0"},
				{ID: "io.spring.dependency-management", Version: "1.1.5"},
				{ID: "java"},
			},
			boot: "3.3.0",
		},
		{
			name: "kotlin dsl",
			script: "plugins {\n" +
				"    java\n" +
				"    id(\"org.springframework.boot\") version \"3.2.1\"\n" +
				"    id(\"io.spring.dependency-management\") version \"1.1.4\"\n" +
				"    kotlin(\"jvm\") version \"1.9.22\"\n" +
				"}\n",
			want: []GradlePlugin{
				{ID: "org.springframework.boot", Version: "3.2.1"},
				{ID: "io.spring.dependency-management", Version: "1.1.4"},
			},
			boot: "3.2.1",
		},
		{
			name:   "one-line block",
			script: "plugins { id 'java'; id 'org.springframework.boot' version '3.1.0' }\n",
			want: []GradlePlugin{
				{ID: "java"},
				{ID: "org.springframework.boot", Version: "3.1.0"},
			},
			boot: "3.1.0",
		},
		{
			name: "apply plugin",
			script: "apply plugin: 'java'\n" +
				"apply plugin: 'org.springframework.boot'\n",
			want: []GradlePlugin{
				{ID: "java"},
				{ID: "org.springframework.boot"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := ParseGradle(tt.script)
			assert.Equal(t, tt.want, b.Plugins)
			assert.Equal(t, tt.boot, b.SpringBootVersion())
		})
	}
}

// Test: unknown kinds
func TestParse_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Parse(extract.ConfigKind("toml"), []byte("a = 1"))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}
