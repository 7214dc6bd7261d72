package files

import (
	"context"
	"path/filepath"
	"strings"
)

// Layout records which parts of the conventional Maven/Gradle directory layout exist.
type Layout struct {
	IsSpringBoot   bool   `json:"is_spring_boot_project"`
	HasMaven       bool   `json:"has_maven"`
	HasGradle      bool   `json:"has_gradle"`
	HasMainSources bool   `json:"has_main_sources"`
	HasTestSources bool   `json:"has_test_sources"`
	HasResources   bool   `json:"has_resources"`
	MainClass      string `json:"main_class,omitempty"`
}

// DetectLayout inspects dir for build files and source roots. A directory with a build
// file counts as a Spring Boot project; MainClass is the path below src/main/java,
// without extension, of the first file bootstrapping a Spring application.
func (p *Provider) DetectLayout(ctx context.Context, dir string) (*Layout, error) {
	at := func(rel string) string { return filepath.Join(dir, filepath.FromSlash(rel)) }

	l := &Layout{
		HasMaven:       p.Exists(at("pom.xml")),
		HasGradle:      p.Exists(at("build.gradle")) || p.Exists(at("build.gradle.kts")),
		HasMainSources: p.IsDir(at("src/main/java")),
		HasTestSources: p.IsDir(at("src/test/java")),
		HasResources:   p.IsDir(at("src/main/resources")),
	}
	l.IsSpringBoot = l.HasMaven || l.HasGradle

	if l.HasMainSources {
		main, err := p.FindMainClass(ctx, at("src/main/java"))
		if err != nil {
			return nil, err
		}
		l.MainClass = main
	}
	return l, nil
}

// FindMainClass searches a source root for a class annotated @SpringBootApplication or
// calling SpringApplication.run and returns its slash separated path without extension.
func (p *Provider) FindMainClass(ctx context.Context, sourceRoot string) (string, error) {
	paths, err := p.List(ctx, sourceRoot, "*.java", true)
	if err != nil {
		return "", err
	}
	root, err := p.Resolve(sourceRoot)
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		text, err := p.ReadText(path)
		if err != nil {
			continue
		}
		if strings.Contains(text, "@SpringBootApplication") || strings.Contains(text, "SpringApplication.run") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return "", err
			}
			return strings.TrimSuffix(filepath.ToSlash(rel), ".java"), nil
		}
	}
	return "", nil
}
