package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvp-joe/springctx/internal/analysis"
	"github.com/mvp-joe/springctx/internal/extract"
)

// JavaVersion is the Java release a build targets and the build system declaring it.
type JavaVersion struct {
	Version string `json:"version"`
	Source  string `json:"source"`
}

// SpringBootInfo describes the Spring Boot usage of a project.
type SpringBootInfo struct {
	Detected bool     `json:"detected"`
	Version  string   `json:"version"`
	Starters []string `json:"starters"`
	Actuator bool     `json:"actuator"`
	Security bool     `json:"security"`
}

// DatabaseInfo describes the persistence libraries of a project.
type DatabaseInfo struct {
	Detected     bool     `json:"detected"`
	Technologies []string `json:"technologies"`
	JPA          bool     `json:"jpa"`
	JDBC         bool     `json:"jdbc"`
	NoSQL        []string `json:"nosql"`
}

// Technologies is the response of detect_technologies.
type Technologies struct {
	JavaVersion       JavaVersion           `json:"java_version"`
	SpringBoot        SpringBootInfo        `json:"spring_boot"`
	BuildSystem       string                `json:"build_system"`
	BuildFiles        []string              `json:"build_files"`
	Database          DatabaseInfo          `json:"database"`
	TestingFrameworks []string              `json:"testing_frameworks"`
	OtherFrameworks   []string              `json:"other_frameworks"`
	Dependencies      []analysis.Dependency `json:"dependencies"`
}

const unknown = "unknown"

// keyword maps a dependency substring to the technology it reveals.
type keyword struct {
	match string
	name  string
}

// Tables are checked in order; for drivers and frameworks the first matching keyword
// names the technology.
var (
	sqlDrivers = []keyword{
		{"mysql", "MySQL"},
		{"mariadb", "MariaDB"},
		{"postgresql", "PostgreSQL"},
		{"oracle", "Oracle"},
		{"sqlserver", "SQL Server"},
		{"mssql", "SQL Server"},
		{"h2database", "H2"},
	}
	noSQLStores    = []string{"mongodb", "redis", "cassandra", "neo4j", "elasticsearch"}
	jpaKeywords    = []string{"hibernate", "jpa", "javax.persistence", "jakarta.persistence"}
	jdbcKeywords   = []string{"jdbc", "mysql", "mariadb", "postgresql", "oracle", "sqlserver", "mssql", "h2database"}
	testFrameworks = []keyword{
		{"junit", "JUnit"},
		{"testng", "TestNG"},
		{"mockito", "Mockito"},
		{"spring-boot-starter-test", "Spring Test"},
		{"spring-test", "Spring Test"},
		{"testcontainers", "TestContainers"},
		{"assertj", "AssertJ"},
	}
	otherFrameworks = []keyword{
		{"swagger", "Swagger/OpenAPI"},
		{"openapi", "Swagger/OpenAPI"},
		{"lombok", "Lombok"},
		{"mapstruct", "MapStruct"},
		{"slf4j", "Logging (SLF4J/Logback)"},
		{"logback", "Logging (SLF4J/Logback)"},
		{"flyway", "Flyway"},
		{"liquibase", "Liquibase"},
	}
)

// DetectTechnologies reads the build files and sources of the project at root.
func (s *Service) DetectTechnologies(ctx context.Context, root string) (*Technologies, error) {
	_, info, err := s.provider.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	build := analysis.ReadBuild(s.provider, root)
	t := &Technologies{
		JavaVersion:       JavaVersion{Version: unknown, Source: unknown},
		SpringBoot:        SpringBootInfo{Version: unknown, Starters: []string{}},
		BuildSystem:       build.System,
		BuildFiles:        build.Files,
		Database:          DatabaseInfo{Technologies: []string{}, NoSQL: []string{}},
		TestingFrameworks: []string{},
		OtherFrameworks:   []string{},
		Dependencies:      build.Dependencies,
	}
	if build.JavaVersion != "" {
		t.JavaVersion = JavaVersion{Version: build.JavaVersion, Source: build.JavaVersionSource}
	}
	if build.SpringBootVersion != "" {
		t.SpringBoot.Detected = true
		t.SpringBoot.Version = build.SpringBootVersion
	}

	tests := newOrderedSet()
	other := newOrderedSet()
	technologies := newOrderedSet()
	for _, d := range build.Dependencies {
		artifact := strings.ToLower(d.ArtifactID)
		coordinate := strings.ToLower(d.Coordinate())

		if strings.Contains(artifact, "spring-boot") {
			t.SpringBoot.Detected = true
			if starter := strings.TrimPrefix(artifact, "spring-boot-starter-"); starter != artifact {
				t.SpringBoot.Starters = append(t.SpringBoot.Starters, starter)
			}
			t.SpringBoot.Actuator = t.SpringBoot.Actuator || strings.Contains(artifact, "starter-actuator")
			t.SpringBoot.Security = t.SpringBoot.Security || strings.Contains(artifact, "starter-security")
		} else if strings.HasPrefix(d.GroupID, "org.springframework") {
			other.add("Spring Framework")
		}

		if containsAny(coordinate, jpaKeywords) {
			t.Database.JPA = true
		}
		if containsAny(coordinate, jdbcKeywords) {
			t.Database.JDBC = true
			if name := firstMatch(coordinate, sqlDrivers); name != "" {
				technologies.add(name)
			}
		}
		for _, store := range noSQLStores {
			if strings.Contains(coordinate, store) {
				t.Database.NoSQL = append(t.Database.NoSQL, d.ArtifactID)
				break
			}
		}

		if name := firstMatch(coordinate, testFrameworks); name != "" {
			tests.add(name)
		}
		if name := firstMatch(coordinate, otherFrameworks); name != "" {
			other.add(name)
		}
	}
	t.Database.Technologies = technologies.items
	t.Database.Detected = t.Database.JPA || t.Database.JDBC || len(t.Database.NoSQL) > 0
	t.TestingFrameworks = tests.items
	t.OtherFrameworks = other.items

	if !t.SpringBoot.Detected {
		detected, err := s.hasSpringBootApplication(ctx, root)
		if err != nil {
			return nil, err
		}
		t.SpringBoot.Detected = detected
	}
	return t, nil
}

func (s *Service) hasSpringBootApplication(ctx context.Context, root string) (bool, error) {
	sources, err := s.javaSources(ctx, root)
	if err != nil {
		return false, err
	}
	for _, src := range sources {
		if extract.HasAnnotation(src.text, extract.AnnSpringBootApplication) {
			return true, nil
		}
	}
	return false, nil
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func firstMatch(s string, table []keyword) string {
	for _, k := range table {
		if strings.Contains(s, k.match) {
			return k.name
		}
	}
	return ""
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}, items: []string{}}
}

func (o *orderedSet) add(v string) {
	if !o.seen[v] {
		o.seen[v] = true
		o.items = append(o.items, v)
	}
}
