package extract

import (
	"sort"
	"strings"
)

// Annotation is a member of the closed vocabulary of recognized Spring/JPA annotations.
type Annotation string

const (
	AnnRestController          Annotation = "RestController"
	AnnController              Annotation = "Controller"
	AnnService                 Annotation = "Service"
	AnnRepository              Annotation = "Repository"
	AnnComponent               Annotation = "Component"
	AnnConfiguration           Annotation = "Configuration"
	AnnAutowired               Annotation = "Autowired"
	AnnRequestMapping          Annotation = "RequestMapping"
	AnnGetMapping              Annotation = "GetMapping"
	AnnPostMapping             Annotation = "PostMapping"
	AnnPutMapping              Annotation = "PutMapping"
	AnnDeleteMapping           Annotation = "DeleteMapping"
	AnnPatchMapping            Annotation = "PatchMapping"
	AnnRequestBody             Annotation = "RequestBody"
	AnnPathVariable            Annotation = "PathVariable"
	AnnRequestParam            Annotation = "RequestParam"
	AnnResponseBody            Annotation = "ResponseBody"
	AnnEnableAutoConfiguration Annotation = "EnableAutoConfiguration"
	AnnSpringBootApplication   Annotation = "SpringBootApplication"
	AnnBean                    Annotation = "Bean"
	AnnValue                   Annotation = "Value"
	AnnProfile                 Annotation = "Profile"
	AnnEntity                  Annotation = "Entity"
	AnnTable                   Annotation = "Table"
)

// Vocabulary is the complete recognized annotation set in canonical order.
var Vocabulary = []Annotation{
	AnnRestController, AnnController, AnnService, AnnRepository, AnnComponent,
	AnnConfiguration, AnnAutowired, AnnRequestMapping, AnnGetMapping, AnnPostMapping,
	AnnPutMapping, AnnDeleteMapping, AnnPatchMapping, AnnRequestBody, AnnPathVariable,
	AnnRequestParam, AnnResponseBody, AnnEnableAutoConfiguration, AnnSpringBootApplication,
	AnnBean, AnnValue, AnnProfile, AnnEntity, AnnTable,
}

// String renders the annotation as it appears in source, e.g. "@Service".
func (a Annotation) String() string { return "@" + string(a) }

// mappingVerbs maps the request-mapping family to its default verb.
var mappingVerbs = map[Annotation]HTTPVerb{
	AnnGetMapping:     VerbGet,
	AnnPostMapping:    VerbPost,
	AnnPutMapping:     VerbPut,
	AnnDeleteMapping:  VerbDelete,
	AnnPatchMapping:   VerbPatch,
	AnnRequestMapping: VerbGet,
}

// ComponentType is the Spring stereotype a declaration is classified as.
type ComponentType string

const (
	ComponentController    ComponentType = "Controller"
	ComponentService       ComponentType = "Service"
	ComponentRepository    ComponentType = "Repository"
	ComponentComponent     ComponentType = "Component"
	ComponentConfiguration ComponentType = "Configuration"
)

// classification is ordered by priority; the first annotation present wins.
var classification = []struct {
	annotation Annotation
	component  ComponentType
}{
	{AnnRestController, ComponentController},
	{AnnController, ComponentController},
	{AnnService, ComponentService},
	{AnnRepository, ComponentRepository},
	{AnnComponent, ComponentComponent},
	{AnnConfiguration, ComponentConfiguration},
}

// Classify picks the stereotype for a declaration's annotation names. Names may be given
// with or without the leading '@' and may be package qualified.
func Classify(annotations []string) ComponentType {
	present := make(map[string]bool, len(annotations))
	for _, a := range annotations {
		present[simpleAnnotationName(a)] = true
	}
	for _, c := range classification {
		if present[string(c.annotation)] {
			return c.component
		}
	}
	return ""
}

// RecognizedAnnotations reports which vocabulary annotations occur in text, as "@Name",
// ordered by first occurrence.
//
// Presence is plain substring containment, not identifier matching: "@ServiceLocator"
// also reports "@Service", and an annotation that only appears inside a comment or a
// string literal is still counted.
func RecognizedAnnotations(text string) []string {
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for _, a := range Vocabulary {
		if pos := strings.Index(text, a.String()); pos >= 0 {
			hits = append(hits, hit{a.String(), pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return names
}

// HasAnnotation reports whether text contains the annotation, using the same substring
// rule as RecognizedAnnotations.
func HasAnnotation(text string, a Annotation) bool {
	return strings.Contains(text, a.String())
}

func simpleAnnotationName(name string) string {
	name = strings.TrimPrefix(name, "@")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// dedupe removes repeated names keeping the first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
