package files

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
)

// buildFiles are project files that configure the build or the application.
var buildFiles = map[string]bool{
	"pom.xml":             true,
	"build.gradle":        true,
	"build.gradle.kts":    true,
	"settings.gradle":     true,
	"settings.gradle.kts": true,
}

// Info is the metadata reported for a file.
type Info struct {
	Name         string        `json:"name"`
	Path         string        `json:"path"`
	Size         int64         `json:"size"`
	SizeHuman    string        `json:"size_human"`
	Modified     time.Time     `json:"modified"`
	Extension    string        `json:"extension"`
	MimeType     string        `json:"mime_type,omitempty"`
	IsDir        bool          `json:"is_dir,omitempty"`
	IsJavaFile   bool          `json:"is_java_file"`
	IsConfigFile bool          `json:"is_config_file"`
	Digest       digest.Digest `json:"hash,omitempty"`
}

// IsJavaFile reports whether name is a Java source file.
func IsJavaFile(name string) bool {
	return filepath.Ext(name) == ".java"
}

// IsConfigFile reports whether name is a build file or a Spring Boot application config,
// profile specific variants such as application-dev.yml included.
func IsConfigFile(name string) bool {
	name = filepath.Base(name)
	if buildFiles[name] {
		return true
	}
	ext := filepath.Ext(name)
	switch ext {
	case ".properties", ".yml", ".yaml":
	default:
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	return stem == "application" || strings.HasPrefix(stem, "application-") || stem == "bootstrap"
}

// Info returns the metadata of path. The digest is the sha256 of the content and is
// left empty for directories.
func (p *Provider) Info(path string) (*Info, error) {
	resolved, stat, err := p.Stat(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(resolved)
	ext := filepath.Ext(name)
	info := &Info{
		Name:         name,
		Path:         p.Display(resolved),
		Size:         stat.Size(),
		SizeHuman:    humanize.Bytes(uint64(stat.Size())),
		Modified:     stat.ModTime().UTC(),
		Extension:    ext,
		IsDir:        stat.IsDir(),
		IsJavaFile:   !stat.IsDir() && IsJavaFile(name),
		IsConfigFile: !stat.IsDir() && IsConfigFile(name),
	}
	if stat.IsDir() {
		return info, nil
	}

	if ext != "" {
		info.MimeType = mime.TypeByExtension(ext)
	}
	data, err := p.ReadBytes(path)
	if err != nil {
		return nil, err
	}
	info.Digest = digest.FromBytes(data)
	return info, nil
}
