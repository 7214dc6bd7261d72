package configfile

import (
	"encoding/xml"
	"fmt"
)

// Bean is a <bean> definition from a Spring XML context file.
type Bean struct {
	ID         string         `xml:"id,attr" json:"id,omitempty"`
	Name       string         `xml:"name,attr" json:"name,omitempty"`
	Class      string         `xml:"class,attr" json:"class,omitempty"`
	Scope      string         `xml:"scope,attr" json:"scope,omitempty"`
	Parent     string         `xml:"parent,attr" json:"parent,omitempty"`
	Factory    string         `xml:"factory-method,attr" json:"factory_method,omitempty"`
	Properties []BeanProperty `xml:"property" json:"properties,omitempty"`
}

// BeanProperty is a <property> of a bean.
type BeanProperty struct {
	Name  string `xml:"name,attr" json:"name"`
	Value string `xml:"value,attr" json:"value,omitempty"`
	Ref   string `xml:"ref,attr" json:"ref,omitempty"`
}

type beansDocument struct {
	XMLName xml.Name `xml:"beans"`
	Beans   []Bean   `xml:"bean"`
	// <beans profile="..."> blocks nest further bean lists.
	Nested []beansDocument `xml:"beans"`
}

func (d beansDocument) all() []Bean {
	out := append([]Bean{}, d.Beans...)
	for _, n := range d.Nested {
		out = append(out, n.all()...)
	}
	return out
}

// ParseBeans returns the bean definitions of a Spring XML file. Documents whose root is
// not <beans> (a pom.xml, a logback config) contain no beans and yield an empty list.
func ParseBeans(data []byte) ([]Bean, error) {
	var root struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if root.XMLName.Local != "beans" {
		return []Bean{}, nil
	}

	var doc beansDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return doc.all(), nil
}
