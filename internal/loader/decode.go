package loader

import (
	"fmt"

	"github.com/archstat/archstat/schema"
	"gopkg.in/yaml.v3"
)

// manifestDoc is the on-disk shape of a model manifest. YAML is a superset
// of JSON, so one decoder covers manifests in either dialect.
type manifestDoc struct {
	Name     string            `yaml:"name"`
	Elements []manifestElement `yaml:"elements"`
}

type manifestElement struct {
	ID         string              `yaml:"id"`
	Type       string              `yaml:"type"`
	Name       string              `yaml:"name"`
	Attributes map[string]any      `yaml:"attributes"`
	Relations  map[string][]string `yaml:"relations"`
}

// DecodeSnapshot parses manifest bytes into an immutable snapshot.
// It fails with schema.SchemaMismatchError when the data violates the
// expected element/attribute/relation shape; it never returns a partial
// snapshot. Dangling relation targets are allowed and kept as-is.
func DecodeSnapshot(data []byte, locator string, revision string) (*schema.Snapshot, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &schema.SchemaMismatchError{Locator: locator, Detail: fmt.Sprintf("not a valid manifest document: %v", err)}
	}

	snapshot := &schema.Snapshot{
		Revision: revision,
		Elements: make(map[string]schema.Element, len(doc.Elements)),
	}

	seen := make(map[string]int) // derivation base -> occurrences, for collision suffixes
	for i, raw := range doc.Elements {
		if raw.Type == "" {
			return nil, &schema.SchemaMismatchError{Locator: locator, Detail: fmt.Sprintf("element %d has no type tag", i)}
		}

		attrs, err := normalizeAttributes(raw.Attributes)
		if err != nil {
			return nil, &schema.SchemaMismatchError{Locator: locator, Detail: fmt.Sprintf("element %d: %v", i, err)}
		}
		if raw.Name != "" {
			if attrs == nil {
				attrs = make(map[string]any, 1)
			}
			attrs["name"] = raw.Name
		}

		id := raw.ID
		if id == "" {
			id = DeriveID(raw.Type, raw.Name, seen)
		}
		if _, dup := snapshot.Elements[id]; dup {
			return nil, &schema.SchemaMismatchError{Locator: locator, Detail: fmt.Sprintf("duplicate element id %q", id)}
		}

		var relations map[string][]string
		if len(raw.Relations) > 0 {
			relations = make(map[string][]string, len(raw.Relations))
			for rel, targets := range raw.Relations {
				relations[rel] = append([]string(nil), targets...)
			}
		}

		snapshot.Elements[id] = schema.Element{
			ID:         id,
			Type:       raw.Type,
			Attributes: attrs,
			Relations:  relations,
		}
	}

	return snapshot, nil
}

// DeriveID builds a stable identifier for elements whose manifest entry has
// none: the path "<type>/<name>", suffixed with "#<n>" from the second
// occurrence of the same path onward. Derivation follows document order, so
// repeated loads of the same manifest produce the same ids, and ids stay
// stable across revisions as long as type and name survive.
func DeriveID(typeTag string, name string, seen map[string]int) string {
	base := typeTag + "/" + name
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s#%d", base, n)
}

// normalizeAttributes enforces scalar-only attribute values and folds all
// numeric types to float64 so values compare equal across revisions
// regardless of how the decoder typed them.
func normalizeAttributes(raw map[string]any) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	attrs := make(map[string]any, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			attrs[key] = nil
		case string:
			attrs[key] = v
		case bool:
			attrs[key] = v
		case int:
			attrs[key] = float64(v)
		case int64:
			attrs[key] = float64(v)
		case uint64:
			attrs[key] = float64(v)
		case float64:
			attrs[key] = v
		default:
			return nil, fmt.Errorf("attribute %q has non-scalar value of type %T", key, value)
		}
	}
	return attrs, nil
}
