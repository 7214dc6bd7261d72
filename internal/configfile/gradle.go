package configfile

import (
	"regexp"
	"strings"
)

// Gradle build scripts are Groovy or Kotlin programs, so they are read with patterns for
// the common declarative forms only. Dependencies built from variables or declared
// through helper functions are not seen. Plugin patterns stay on one line so that
// consecutive plugin declarations are all matched.
var (
	gradleDependency = regexp.MustCompile(`(?m)^\s*(implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly|annotationProcessor|developmentOnly|compile|testCompile|kapt)\s*\(?\s*['"]([^'"]+)['"]`)
	gradlePlugin     = regexp.MustCompile(`\bid[ \t]*\(?[ \t]*['"]([^'"]+)['"][ \t]*\)?(?:[ \t]+version[ \t]*\(?[ \t]*['"]([^'"]+)['"])?`)
	gradleApplyPlug  = regexp.MustCompile(`(?m)^\s*apply\s+plugin\s*:\s*['"]([^'"]+)['"]`)
	gradleJava       = regexp.MustCompile(`(?m)(?:sourceCompatibility|targetCompatibility)\s*=\s*['"]?(?:JavaVersion\.VERSION_)?([\d._]+)['"]?|languageVersion(?:\.set\(|\s*=\s*)\s*JavaLanguageVersion\.of\((\d+)\)`)
	gradleProperty   = regexp.MustCompile(`(?m)^\s*(group|version|description)\s*=\s*['"]([^'"]*)['"]`)
)

// GradleDependency is one dependency declaration of a Gradle build.
type GradleDependency struct {
	Configuration string `json:"configuration"`
	Coordinate    string `json:"coordinate"`
}

// GradlePlugin is a plugin applied by the build.
type GradlePlugin struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

// GradleBuild is what could be read from a build.gradle or build.gradle.kts.
type GradleBuild struct {
	Group        string             `json:"group,omitempty"`
	Version      string             `json:"version,omitempty"`
	JavaVersion  string             `json:"java_version,omitempty"`
	Plugins      []GradlePlugin     `json:"plugins"`
	Dependencies []GradleDependency `json:"dependencies"`
}

// ParseGradle reads the declarative parts of a Gradle build script.
func ParseGradle(text string) *GradleBuild {
	b := &GradleBuild{Plugins: []GradlePlugin{}, Dependencies: []GradleDependency{}}

	for _, m := range gradleDependency.FindAllStringSubmatch(text, -1) {
		b.Dependencies = append(b.Dependencies, GradleDependency{Configuration: m[1], Coordinate: m[2]})
	}
	for _, m := range gradlePlugin.FindAllStringSubmatch(text, -1) {
		b.Plugins = append(b.Plugins, GradlePlugin{ID: m[1], Version: m[2]})
	}
	for _, m := range gradleApplyPlug.FindAllStringSubmatch(text, -1) {
		b.Plugins = append(b.Plugins, GradlePlugin{ID: m[1]})
	}
	if m := gradleJava.FindStringSubmatch(text); m != nil {
		b.JavaVersion = strings.TrimPrefix(strings.ReplaceAll(m[1]+m[2], "_", "."), "1.")
	}
	for _, m := range gradleProperty.FindAllStringSubmatch(text, -1) {
		switch m[1] {
		case "group":
			b.Group = m[2]
		case "version":
			b.Version = m[2]
		}
	}
	return b
}

// SpringBootVersion returns the version of the org.springframework.boot plugin.
func (b *GradleBuild) SpringBootVersion() string {
	for _, p := range b.Plugins {
		if p.ID == "org.springframework.boot" {
			return p.Version
		}
	}
	return ""
}

// Coordinates lists the dependency coordinates.
func (b *GradleBuild) Coordinates() []string {
	out := make([]string, 0, len(b.Dependencies))
	for _, d := range b.Dependencies {
		out = append(out, d.Coordinate)
	}
	return out
}
