package analysis

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/springctx/internal/configfile"
	"github.com/mvp-joe/springctx/internal/files"
)

// Build systems
const (
	BuildMaven   = "maven"
	BuildGradle  = "gradle"
	BuildMixed   = "maven+gradle"
	BuildUnknown = "unknown"
)

// Dependency is a library declared by a build file.
type Dependency struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version,omitempty"`
	Scope      string `json:"scope,omitempty"`
	Source     string `json:"source"`
}

// Coordinate renders group:artifact.
func (d Dependency) Coordinate() string {
	if d.GroupID == "" {
		return d.ArtifactID
	}
	return d.GroupID + ":" + d.ArtifactID
}

// BuildInfo is what the Maven and Gradle build files of a project declare.
type BuildInfo struct {
	System            string       `json:"build_system"`
	Files             []string     `json:"build_files"`
	Dependencies      []Dependency `json:"dependencies"`
	Plugins           []string     `json:"plugins"`
	Profiles          []string     `json:"profiles"`
	JavaVersion       string       `json:"java_version,omitempty"`
	JavaVersionSource string       `json:"java_version_source,omitempty"`
	SpringBootVersion string       `json:"spring_boot_version,omitempty"`
	Errors            []string     `json:"errors,omitempty"`
}

// ReadBuild reads pom.xml, build.gradle(.kts) and settings.gradle(.kts) in dir. Files
// that fail to parse are listed in Errors and otherwise ignored.
func ReadBuild(p *files.Provider, dir string) *BuildInfo {
	b := &BuildInfo{
		System:       BuildUnknown,
		Files:        []string{},
		Dependencies: []Dependency{},
		Plugins:      []string{},
		Profiles:     []string{},
	}
	at := func(name string) string { return filepath.Join(dir, name) }

	if data, err := p.ReadBytes(at("pom.xml")); err == nil {
		b.System = BuildMaven
		b.Files = append(b.Files, "pom.xml")
		if pom, err := configfile.ParsePOM(data); err != nil {
			b.Errors = append(b.Errors, err.Error())
		} else {
			b.addPOM(pom)
		}
	}

	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		text, err := p.ReadText(at(name))
		if err != nil {
			continue
		}
		if b.System == BuildMaven {
			b.System = BuildMixed
		} else {
			b.System = BuildGradle
		}
		b.Files = append(b.Files, name)
		b.addGradle(configfile.ParseGradle(text))
		break
	}
	for _, name := range []string{"settings.gradle", "settings.gradle.kts"} {
		if p.Exists(at(name)) {
			b.Files = append(b.Files, name)
		}
	}

	if b.SpringBootVersion == "" {
		for _, d := range b.Dependencies {
			if d.GroupID == "org.springframework.boot" && d.Version != "" {
				b.SpringBootVersion = d.Version
				break
			}
		}
	}
	return b
}

func (b *BuildInfo) addPOM(pom *configfile.POM) {
	for _, d := range pom.Dependencies {
		b.Dependencies = append(b.Dependencies, Dependency{
			GroupID:    pom.Resolve(d.GroupID),
			ArtifactID: pom.Resolve(d.ArtifactID),
			Version:    pom.Resolve(d.Version),
			Scope:      d.Scope,
			Source:     BuildMaven,
		})
	}
	for _, plugin := range pom.Plugins {
		b.Plugins = append(b.Plugins, plugin.Coordinate())
	}
	for _, profile := range pom.Profiles {
		b.Profiles = append(b.Profiles, profile.ID)
	}
	if v := pom.JavaVersion(); v != "" {
		b.JavaVersion, b.JavaVersionSource = v, BuildMaven
	}
	b.SpringBootVersion = pom.SpringBootVersion()
}

func (b *BuildInfo) addGradle(g *configfile.GradleBuild) {
	for _, d := range g.Dependencies {
		dep := Dependency{Scope: d.Configuration, Source: BuildGradle}
		parts := strings.Split(d.Coordinate, ":")
		switch len(parts) {
		case 1:
			dep.ArtifactID = parts[0]
		case 2:
			dep.GroupID, dep.ArtifactID = parts[0], parts[1]
		default:
			dep.GroupID, dep.ArtifactID, dep.Version = parts[0], parts[1], parts[2]
		}
		b.Dependencies = append(b.Dependencies, dep)
	}
	for _, plugin := range g.Plugins {
		b.Plugins = append(b.Plugins, plugin.ID)
	}
	if b.JavaVersion == "" && g.JavaVersion != "" {
		b.JavaVersion, b.JavaVersionSource = g.JavaVersion, BuildGradle
	}
	if b.SpringBootVersion == "" {
		b.SpringBootVersion = g.SpringBootVersion()
	}
}

// Coordinates lists group:artifact of the dependencies declared by source.
func (b *BuildInfo) Coordinates(source string) []string {
	out := []string{}
	for _, d := range b.Dependencies {
		if d.Source == source {
			out = append(out, d.Coordinate())
		}
	}
	return out
}

// databaseKeywords mark dependencies that talk to a database.
var databaseKeywords = []string{"jdbc", "mysql", "postgresql", "mariadb", "h2database", "oracle", "sqlserver", "mongodb", "redis", "cassandra", "hibernate", "jpa"}

// IsDatabaseDependency reports whether a coordinate names a driver, ORM or data store.
func IsDatabaseDependency(coordinate string) bool {
	lower := strings.ToLower(coordinate)
	for _, k := range databaseKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
