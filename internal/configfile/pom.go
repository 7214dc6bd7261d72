package configfile

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// POM is the subset of a Maven project model the analyzers read.
type POM struct {
	XMLName      xml.Name     `xml:"project" json:"-"`
	GroupID      string       `xml:"groupId" json:"group_id,omitempty"`
	ArtifactID   string       `xml:"artifactId" json:"artifact_id,omitempty"`
	Version      string       `xml:"version" json:"version,omitempty"`
	Packaging    string       `xml:"packaging" json:"packaging,omitempty"`
	Name         string       `xml:"name" json:"name,omitempty"`
	Parent       *Parent      `xml:"parent" json:"parent,omitempty"`
	Modules      []string     `xml:"modules>module" json:"modules,omitempty"`
	Properties   Properties   `xml:"properties" json:"properties,omitempty"`
	Dependencies []Dependency `xml:"dependencies>dependency" json:"dependencies"`
	Plugins      []Dependency `xml:"build>plugins>plugin" json:"plugins,omitempty"`
	Profiles     []Profile    `xml:"profiles>profile" json:"profiles,omitempty"`
}

// Parent is the <parent> of a POM.
type Parent struct {
	GroupID    string `xml:"groupId" json:"group_id"`
	ArtifactID string `xml:"artifactId" json:"artifact_id"`
	Version    string `xml:"version" json:"version"`
}

// Properties holds the free-form <properties> element.
type Properties map[string]string

// UnmarshalXML reads each child element as one property.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*p = make(Properties)
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			(*p)[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// Dependency is a Maven dependency or plugin coordinate.
type Dependency struct {
	GroupID    string `xml:"groupId" json:"group_id"`
	ArtifactID string `xml:"artifactId" json:"artifact_id"`
	Version    string `xml:"version" json:"version,omitempty"`
	Scope      string `xml:"scope" json:"scope,omitempty"`
}

// Coordinate renders group:artifact[:version].
func (d Dependency) Coordinate() string {
	c := d.GroupID + ":" + d.ArtifactID
	if d.Version != "" {
		c += ":" + d.Version
	}
	return c
}

// Profile is a Maven build profile.
type Profile struct {
	ID string `xml:"id" json:"id"`
}

// ParsePOM parses a pom.xml.
func ParsePOM(data []byte) (*POM, error) {
	var pom POM
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("failed to parse pom.xml: %w", err)
	}
	if pom.Properties == nil {
		pom.Properties = Properties{}
	}
	if pom.Dependencies == nil {
		pom.Dependencies = []Dependency{}
	}
	return &pom, nil
}

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolve expands ${name} references against the POM's properties and project
// coordinates. Unknown references are left in place.
func (p *POM) Resolve(value string) string {
	return propertyRef.ReplaceAllStringFunc(value, func(ref string) string {
		name := ref[2 : len(ref)-1]
		switch name {
		case "project.version":
			return p.Version
		case "project.groupId":
			return p.GroupID
		}
		if v, ok := p.Properties[name]; ok {
			return v
		}
		return ref
	})
}

// JavaVersion reports the Java release the build targets, from java.version or the
// compiler plugin properties.
func (p *POM) JavaVersion() string {
	for _, key := range []string{"java.version", "maven.compiler.release", "maven.compiler.source", "maven.compiler.target"} {
		if v := p.Properties[key]; v != "" {
			return p.Resolve(v)
		}
	}
	return ""
}

// SpringBootVersion returns the spring-boot-starter-parent version, if any.
func (p *POM) SpringBootVersion() string {
	if p.Parent != nil && p.Parent.ArtifactID == "spring-boot-starter-parent" {
		return p.Resolve(p.Parent.Version)
	}
	for _, d := range p.Dependencies {
		if d.ArtifactID == "spring-boot-dependencies" {
			return p.Resolve(d.Version)
		}
	}
	return ""
}
