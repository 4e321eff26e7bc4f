package chatbot

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Category names
const (
	Greeting   = "greeting"
	Farewell   = "farewell"
	Help       = "help"
	Courses    = "courses"
	Faculty    = "faculty"
	Facilities = "facilities"
	Admission  = "admission"
	Default    = "default"
)

var (
	//go:embed categories.yaml
	defaultTableYAML []byte

	errNoCategories   = errors.New("no categories defined")
	errDefaultNotLast = errors.New("the last category must be " + Default)
)

// Category is a named bucket of canned replies.
type Category struct {
	Name      string   `yaml:"name"`
	Triggers  []string `yaml:"triggers"`
	Responses []string `yaml:"responses"`
}

// matches reports whether any trigger is a substring of the normalized message.
// Default has no triggers and always matches.
func (c Category) matches(normalized string) bool {
	if c.Name == Default {
		return true
	}
	for _, trigger := range c.Triggers {
		if strings.Contains(normalized, trigger) {
			return true
		}
	}
	return false
}

// Table is the ordered, read-only list of categories. The last one is always Default.
type Table struct {
	categories []Category
}

type tableFile struct {
	Categories []Category `yaml:"categories"`
}

// DefaultTable returns the category table embedded in the binary.
func DefaultTable() (Table, error) {
	return ParseTable(defaultTableYAML)
}

// LoadTable reads a category table from a YAML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, errors.Wrap(err, "reading categories file")
	}
	return ParseTable(data)
}

// ParseTable decodes and validates a YAML category table.
func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Table{}, errors.Wrap(err, "decoding categories")
	}
	return NewTable(f.Categories...)
}

// NewTable validates categories and returns them as a Table.
// The given slices are copied, triggers are lowercased.
func NewTable(categories ...Category) (Table, error) {
	n := len(categories)
	if n == 0 {
		return Table{}, errNoCategories
	}
	if categories[n-1].Name != Default {
		return Table{}, errDefaultNotLast
	}

	seen := make(map[string]bool, n)
	cats := make([]Category, 0, n)
	for i, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		switch {
		case name == "":
			return Table{}, errors.Errorf("category #%d has no name", i+1)
		case seen[name]:
			return Table{}, errors.Errorf("category %q defined twice", name)
		case len(cat.Responses) == 0:
			return Table{}, errors.Errorf("category %q has no responses", name)
		case name == Default && len(cat.Triggers) > 0:
			return Table{}, errors.Errorf("category %q cannot have triggers", Default)
		case name != Default && len(cat.Triggers) == 0:
			return Table{}, errors.Errorf("category %q has no triggers", name)
		}
		seen[name] = true

		triggers := make([]string, 0, len(cat.Triggers))
		for _, trigger := range cat.Triggers {
			if trigger == "" {
				return Table{}, errors.Errorf("category %q has an empty trigger", name)
			}
			triggers = append(triggers, strings.ToLower(trigger))
		}
		for _, resp := range cat.Responses {
			if resp == "" {
				return Table{}, errors.Errorf("category %q has an empty response", name)
			}
		}

		cats = append(cats, Category{
			Name:      name,
			Triggers:  triggers,
			Responses: append([]string(nil), cat.Responses...),
		})
	}
	return Table{categories: cats}, nil
}

// Names returns the category names in evaluation order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t.categories))
	for _, cat := range t.categories {
		names = append(names, cat.Name)
	}
	return names
}

// Category returns a copy of the named category.
func (t Table) Category(name string) (Category, bool) {
	for _, cat := range t.categories {
		if cat.Name == name {
			return Category{
				Name:      cat.Name,
				Triggers:  append([]string(nil), cat.Triggers...),
				Responses: append([]string(nil), cat.Responses...),
			}, true
		}
	}
	return Category{}, false
}

// match returns the first category matching the normalized message.
func (t Table) match(normalized string) *Category {
	for i := range t.categories {
		if t.categories[i].matches(normalized) {
			return &t.categories[i]
		}
	}
	// unreachable for a validated Table: Default is last and always matches
	return &t.categories[len(t.categories)-1]
}
