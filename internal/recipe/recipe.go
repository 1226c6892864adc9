package recipe

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/sift"
)

// Recipe declares named extraction fields applied to each document.
type Recipe struct {
	Fields []Field `yaml:"fields"`
}

// Field extracts one value (or list of values) per document.
type Field struct {
	Name     string   `yaml:"name"`
	Selector string   `yaml:"selector,omitempty"`
	XPath    string   `yaml:"xpath,omitempty"`
	Attr     string   `yaml:"attr,omitempty"`
	All      bool     `yaml:"all,omitempty"`
	Ops      []string `yaml:"ops,omitempty"`
	Required bool     `yaml:"required,omitempty"`
	Default  *string  `yaml:"default,omitempty"`
}

// Load reads and parses a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates recipe YAML.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks that every field is extractable.
func (r *Recipe) Validate() error {
	if len(r.Fields) == 0 {
		return fmt.Errorf("recipe has no fields")
	}
	for i, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if f.Selector == "" && f.XPath == "" {
			return fmt.Errorf("field %q: selector or xpath is required", f.Name)
		}
		if f.Selector != "" && f.XPath != "" {
			return fmt.Errorf("field %q: selector and xpath are mutually exclusive", f.Name)
		}
		for _, op := range f.Ops {
			if _, err := applyOp(sift.Q, op); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
	}
	return nil
}

// Extract applies every field to a parsed document.
func (r *Recipe) Extract(doc *sift.Node) (map[string]any, error) {
	out := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		v, err := f.extract(doc)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out[f.Name] = v
	}
	return out, nil
}

func (f *Field) extract(doc *sift.Node) (any, error) {
	pipe, err := f.pipeline()
	if err != nil {
		return nil, err
	}

	if f.All {
		var col *sift.Collection
		if f.XPath != "" {
			col = doc.XPath(f.XPath)
		} else {
			col = doc.FindAll(f.Selector)
		}
		kept := col.Each(pipe).Filter(func(w sift.Wrapper) bool { return !w.IsNull() })
		if kept.IsNull() || kept.Len() == 0 {
			if f.Required {
				return nil, fmt.Errorf("no matches")
			}
			return []any{}, nil
		}
		return kept.Val()
	}

	var node *sift.Node
	if f.XPath != "" {
		node = doc.XPathOne(f.XPath)
	} else {
		node = doc.Find(f.Selector)
	}

	w := node.Apply(pipe)
	if f.Default != nil {
		w = w.OrElse(*f.Default)
	}
	if w.IsNull() {
		if f.Required {
			return nil, fmt.Errorf("no value extracted")
		}
		return nil, nil
	}
	return w.Val()
}

// pipeline builds the per-node value expression: attribute or text,
// followed by the declared ops.
func (f *Field) pipeline() (sift.Expr, error) {
	var e sift.Expr
	if f.Attr != "" {
		e = sift.Q.Method("Attr", f.Attr)
	} else {
		e = sift.Q.Method("Text").TrimSpace()
	}
	for _, op := range f.Ops {
		next, err := applyOp(e, op)
		if err != nil {
			return sift.Expr{}, err
		}
		e = next
	}
	return e, nil
}

func applyOp(e sift.Expr, op string) (sift.Expr, error) {
	if sep, ok := strings.CutPrefix(op, "split:"); ok {
		if sep == "" {
			return sift.Expr{}, fmt.Errorf("split op needs a separator")
		}
		return e.Split(sep), nil
	}
	switch op {
	case "trim":
		return e.TrimSpace(), nil
	case "upper":
		return e.Upper(), nil
	case "lower":
		return e.Lower(), nil
	default:
		return sift.Expr{}, fmt.Errorf("unknown op %q", op)
	}
}
