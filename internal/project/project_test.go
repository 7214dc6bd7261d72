package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/springctx/internal/analysis"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Test Plan for project:
// - The tree lists directories first, stops at the requested depth and marks truncation
// - Totals and file types cover the whole project; sizes only on request
// - Java analysis sorts sources into main, test, component and config classes
// - Spring Boot analysis finds the main class, application config, endpoints, annotations
// - Technology detection for a Maven and a Gradle project
// - Files and missing paths are rejected

func testdataService(t *testing.T, name string) *Service {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return NewService(files.NewOsProvider(root), extract.NewExtractor())
}

// Test: directory tree and totals
func TestStructure_Tree(t *testing.T) {
	t.Parallel()

	s := testdataService(t, "springapp")
	st, err := s.Structure(context.Background(), ".", 2, false)
	require.NoError(t, err)

	assert.Equal(t, "springapp", st.ProjectName)
	assert.Equal(t, ".", st.RootPath)
	assert.Equal(t, 12, st.TotalFiles)
	assert.Equal(t, 17, st.TotalDirectories)
	assert.Equal(t, int64(0), st.TotalSize)
	assert.Equal(t, 7, st.FileTypes[".java"].Count)
	assert.Equal(t, 1, st.FileTypes[".md"].Count)

	tree := st.Tree
	assert.Equal(t, NodeDirectory, tree.Type)
	require.Len(t, tree.Children, 3)
	assert.Equal(t, "src", tree.Children[0].Name)
	assert.Equal(t, "pom.xml", tree.Children[1].Name)
	assert.Equal(t, "README.md", tree.Children[2].Name)
	assert.Nil(t, tree.Children[1].Size)

	src := tree.Children[0]
	require.Len(t, src.Children, 2)
	assert.Equal(t, "src/main", src.Children[0].Path)
	assert.True(t, src.Children[0].Truncated)
	assert.Empty(t, src.Children[0].Children)
}

// Test: sizes and the default depth
func TestStructure_Sizes(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/a/b/c/d/deep.txt", []byte("12345"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/top.txt", []byte("1234567890"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/node_modules/out.js", []byte("xx"), 0o644))
	s := NewService(files.NewProvider(fs, "/ws"), extract.NewExtractor(), WithDefaultDepth(2))

	st, err := s.Structure(context.Background(), ".", 0, true)
	require.NoError(t, err)
	assert.Equal(t, int64(15), st.TotalSize)
	assert.Equal(t, "15 B", st.TotalSizeHuman)
	assert.Equal(t, 2, st.TotalFiles)
	assert.Equal(t, &FileTypeStats{Count: 2, TotalSize: 15}, st.FileTypes[".txt"])

	require.Len(t, st.Tree.Children, 2)
	top := st.Tree.Children[1]
	require.NotNil(t, top.Size)
	assert.Equal(t, int64(10), *top.Size)

	b := st.Tree.Children[0].Children[0]
	assert.Equal(t, "a/b", b.Path)
	assert.True(t, b.Truncated)
	assert.False(t, st.SpringBoot.IsSpringBoot)
	assert.Equal(t, analysis.BuildUnknown, st.Build.System)
}

// Test: Java and Spring Boot analysis
func TestStructure_Spring(t *testing.T) {
	t.Parallel()

	s := testdataService(t, "springapp")
	st, err := s.Structure(context.Background(), ".", 1, false)
	require.NoError(t, err)

	j := st.Java
	assert.Equal(t, 7, j.TotalJavaFiles)
	assert.Len(t, j.Packages, 6)
	assert.Len(t, j.MainClasses, 6)
	assert.Equal(t, []string{"src/test/java/com/example/demo/UserServiceTest.java"}, j.TestClasses)
	assert.Equal(t, []string{"src/main/java/com/example/demo/config/AppConfig.java"}, j.ConfigClasses)
	assert.Equal(t, []string{"src/main/java/com/example/demo/controller/UserController.java"}, j.SpringComponents.Controllers)
	assert.Equal(t, []string{"src/main/java/com/example/demo/service/UserService.java"}, j.SpringComponents.Services)
	assert.Equal(t, []string{"src/main/java/com/example/demo/repository/UserRepository.java"}, j.SpringComponents.Repositories)
	assert.Empty(t, j.SpringComponents.Components)

	sb := st.SpringBoot
	assert.True(t, sb.IsSpringBoot)
	assert.Equal(t, "3.2.0", sb.Version)
	assert.Equal(t, "src/main/java/com/example/demo/DemoApplication.java", sb.MainClass)
	assert.Equal(t, 5, sb.RestEndpoints)
	assert.Equal(t, []string{"@SpringBootApplication", "@RestController", "@Service", "@Repository", "@Autowired", "@Configuration"}, sb.AnnotationsFound)
	assert.Equal(t, "8080", sb.ApplicationConfig.YAML["server.port"])
	assert.Nil(t, sb.ApplicationConfig.Properties)

	assert.Equal(t, analysis.BuildMaven, st.Build.System)
	assert.Equal(t, []string{"dev"}, st.Build.Profiles)
}

// Test: invalid roots
func TestStructure_Errors(t *testing.T) {
	t.Parallel()

	s := testdataService(t, "springapp")
	_, err := s.Structure(context.Background(), "pom.xml", 1, false)
	assert.ErrorIs(t, err, ErrNotDirectory)
	_, err = s.Structure(context.Background(), "nope", 1, false)
	assert.ErrorIs(t, err, files.ErrNotFound)
	_, err = s.DetectTechnologies(context.Background(), "nope")
	assert.ErrorIs(t, err, files.ErrNotFound)
}

// Test: technologies of a Maven project
func TestDetectTechnologies_Maven(t *testing.T) {
	t.Parallel()

	s := testdataService(t, "springapp")
	tech, err := s.DetectTechnologies(context.Background(), ".")
	require.NoError(t, err)

	assert.Equal(t, JavaVersion{Version: "17", Source: "maven"}, tech.JavaVersion)
	assert.Equal(t, SpringBootInfo{
		Detected: true,
		Version:  "3.2.0",
		Starters: []string{"web", "data-jpa", "actuator", "test"},
		Actuator: true,
	}, tech.SpringBoot)
	assert.Equal(t, analysis.BuildMaven, tech.BuildSystem)
	assert.Equal(t, DatabaseInfo{
		Detected:     true,
		Technologies: []string{"PostgreSQL"},
		JPA:          true,
		JDBC:         true,
		NoSQL:        []string{},
	}, tech.Database)
	assert.Equal(t, []string{"Spring Test"}, tech.TestingFrameworks)
	assert.Equal(t, []string{"Lombok"}, tech.OtherFrameworks)
	assert.Len(t, tech.Dependencies, 6)
}

// Test: technologies of a Gradle project
func TestDetectTechnologies_Gradle(t *testing.T) {
	t.Parallel()

	s := testdataService(t, "gradleapp")
	tech, err := s.DetectTechnologies(context.Background(), ".")
	require.NoError(t, err)

	assert.Equal(t, JavaVersion{Version: "21", Source: "gradle"}, tech.JavaVersion)
	assert.Equal(t, "3.1.5", tech.SpringBoot.Version)
	assert.True(t, tech.SpringBoot.Security)
	assert.False(t, tech.SpringBoot.Actuator)
	assert.Equal(t, []string{"web", "security", "test"}, tech.SpringBoot.Starters)
	assert.Equal(t, analysis.BuildGradle, tech.BuildSystem)
	assert.Equal(t, []string{"build.gradle", "settings.gradle"}, tech.BuildFiles)
	assert.Equal(t, []string{"MySQL"}, tech.Database.Technologies)
	assert.False(t, tech.Database.JPA)
	assert.Equal(t, []string{"Spring Test", "JUnit"}, tech.TestingFrameworks)
	assert.Equal(t, []string{"MapStruct"}, tech.OtherFrameworks)
}

// Test: Spring Boot detected from sources only
func TestDetectTechnologies_SourcesOnly(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/src/App.java", []byte("@SpringBootApplication\nclass App {}\n"), 0o644))
	s := NewService(files.NewProvider(fs, "/ws"), extract.NewExtractor())

	tech, err := s.DetectTechnologies(context.Background(), ".")
	require.NoError(t, err)
	assert.True(t, tech.SpringBoot.Detected)
	assert.Equal(t, "unknown", tech.SpringBoot.Version)
	assert.Equal(t, JavaVersion{Version: "unknown", Source: "unknown"}, tech.JavaVersion)
	assert.Equal(t, analysis.BuildUnknown, tech.BuildSystem)
	assert.False(t, tech.Database.Detected)
}
