package enums

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xy-planning-network/enums/filter"
	"gopkg.in/yaml.v3"
)

// ParseConfig reads Entities from a YAML document.
// Definitions named in the document are looked up first among its own definitions, then in known.
//
// A document looks like:
//
//	definitions:
//	  - name: shipping_speed
//	    default: standard
//	    labels:            # a mapping keeps explicit codes, in order
//	      standard: 0
//	      express: 1
//	  - name: carrier
//	    labels: [ups, usps, fedex]   # a list codes labels 0..n-1
//	entities:
//	  - name: shipments
//	    fields:
//	      - column: speed
//	        definition: shipping_speed
//	        prefix: true         # or a qualifier string; suffix works the same
//	    multi_fields:
//	      - column: carriers
//	        definition: carrier
//	        default: [ups]
//	    scopes:
//	      - name: fast
//	        column: speed
//	        labels: [express]
//	      - name: untracked
//	        column: tracking_number
//	        null: true
//	      - name: insured
//	        column: insured
//	        value: true
//
// Any problem returns an error wrapping ErrBadConfig
// or the error Define returns for a bad definition.
func ParseConfig(b []byte, known ...*Definition) ([]Entity, error) {
	var doc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	defs := make(map[string]*Definition, len(known)+len(doc.Definitions))
	for _, d := range known {
		defs[d.Name()] = d
	}

	for _, dc := range doc.Definitions {
		d, err := dc.build()
		if err != nil {
			return nil, err
		}
		defs[d.Name()] = d
	}

	lookup := func(entity, column, name string) (*Definition, error) {
		d, ok := defs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s uses unknown definition %q", ErrBadConfig, entity, column, name)
		}

		return d, nil
	}

	entities := make([]Entity, 0, len(doc.Entities))
	for _, ec := range doc.Entities {
		e := Entity{Name: ec.Name}
		for _, fc := range ec.Fields {
			d, err := lookup(ec.Name, fc.Column, fc.Definition)
			if err != nil {
				return nil, err
			}

			n, err := parseNaming(fc.Prefix, fc.Suffix)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", ec.Name, fc.Column, err)
			}

			e.Fields = append(e.Fields, Field{Column: fc.Column, Definition: d, Naming: n, Default: fc.Default})
		}

		for _, mc := range ec.MultiFields {
			d, err := lookup(ec.Name, mc.Column, mc.Definition)
			if err != nil {
				return nil, err
			}

			n, err := parseNaming(mc.Prefix, mc.Suffix)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", ec.Name, mc.Column, err)
			}

			e.MultiFields = append(e.MultiFields, MultiField{Column: mc.Column, Definition: d, Naming: n, Default: mc.Default})
		}

		for _, sc := range ec.Scopes {
			s := Scope{Name: sc.Name, Column: sc.Column, Labels: sc.Labels, Exclude: sc.Exclude, IsNull: sc.Null}
			if sc.Value != nil {
				f := filter.Eq(sc.Column, sc.Value)
				s.Filter = &f
			}
			e.Scopes = append(e.Scopes, s)
		}

		entities = append(entities, e)
	}

	return entities, nil
}

type fileConfig struct {
	Definitions []definitionConfig `yaml:"definitions"`
	Entities    []entityConfig     `yaml:"entities"`
}

type definitionConfig struct {
	Name    string    `yaml:"name"`
	Default string    `yaml:"default"`
	Labels  yaml.Node `yaml:"labels"`
}

func (dc definitionConfig) build() (*Definition, error) {
	var labels []Label
	switch dc.Labels.Kind {
	case yaml.MappingNode:
		content := dc.Labels.Content
		for i := 0; i+1 < len(content); i += 2 {
			var code int
			if err := content[i+1].Decode(&code); err != nil {
				return nil, fmt.Errorf("%w: definition %q label %q: %s", ErrBadConfig, dc.Name, content[i].Value, err)
			}
			labels = append(labels, Label{Name: content[i].Value, Code: code})
		}

	case yaml.SequenceNode:
		for i, n := range dc.Labels.Content {
			labels = append(labels, Label{Name: n.Value, Code: i})
		}

	default:
		return nil, fmt.Errorf("%w: definition %q labels must be a mapping or a list", ErrBadConfig, dc.Name)
	}

	var opts []DefinitionOption
	if dc.Default != "" {
		opts = append(opts, WithDefault(dc.Default))
	}

	return Define(dc.Name, labels, opts...)
}

type entityConfig struct {
	Name        string        `yaml:"name"`
	Fields      []fieldConfig `yaml:"fields"`
	MultiFields []multiConfig `yaml:"multi_fields"`
	Scopes      []scopeConfig `yaml:"scopes"`
}

type fieldConfig struct {
	Column     string `yaml:"column"`
	Definition string `yaml:"definition"`
	Default    string `yaml:"default"`
	Prefix     any    `yaml:"prefix"`
	Suffix     any    `yaml:"suffix"`
}

type multiConfig struct {
	Column     string   `yaml:"column"`
	Definition string   `yaml:"definition"`
	Default    []string `yaml:"default"`
	Prefix     any      `yaml:"prefix"`
	Suffix     any      `yaml:"suffix"`
}

type scopeConfig struct {
	Name    string   `yaml:"name"`
	Column  string   `yaml:"column"`
	Labels  []string `yaml:"labels"`
	Exclude bool     `yaml:"exclude"`
	Null    bool     `yaml:"null"`
	Value   any      `yaml:"value"`
}

// parseNaming reads the prefix or suffix option, each either a bool or a qualifier.
func parseNaming(prefix, suffix any) (Naming, error) {
	p, err := qualifier(prefix)
	if err != nil {
		return Naming{}, err
	}

	s, err := qualifier(suffix)
	if err != nil {
		return Naming{}, err
	}

	switch {
	case p != nil && s != nil:
		return Naming{}, fmt.Errorf("%w: prefix and suffix are exclusive", ErrBadConfig)
	case p != nil:
		return Prefix(*p), nil
	case s != nil:
		return Suffix(*s), nil
	default:
		return Naming{}, nil
	}
}

func qualifier(v any) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !t {
			return nil, nil
		}
		q := ""
		return &q, nil
	case string:
		return &t, nil
	default:
		return nil, fmt.Errorf("%w: qualifier must be a bool or string, not %T", ErrBadConfig, v)
	}
}
