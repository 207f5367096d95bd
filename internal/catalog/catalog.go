// Package catalog provides the read-only list of activities a user can drop
// onto the weekend grid.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	appLog "weekendly/internal/log"
	"weekendly/internal/model"
)

// Catalog is an immutable, id-indexed list of activities.
type Catalog struct {
	list []model.Activity
	byID map[string]int
}

// New builds a Catalog, rejecting invalid entries and duplicate ids.
func New(activities []model.Activity) (*Catalog, error) {
	c := &Catalog{
		list: make([]model.Activity, 0, len(activities)),
		byID: make(map[string]int, len(activities)),
	}
	var errs []error
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.byID[a.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate activity id %q", a.ID))
			continue
		}
		c.byID[a.ID] = len(c.list)
		c.list = append(c.list, a)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

type catalogFile struct {
	Activities []model.Activity `yaml:"activities"`
}

// Load reads a YAML catalog override. An empty path yields the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if len(f.Activities) == 0 {
		return nil, fmt.Errorf("catalog: %s has no activities", path)
	}
	c, err := New(f.Activities)
	if err != nil {
		return nil, err
	}
	appLog.Info("catalog loaded", "path", path, "count", c.Len())
	return c, nil
}

// All returns a copy of every activity in catalog order.
func (c *Catalog) All() []model.Activity {
	out := make([]model.Activity, len(c.list))
	copy(out, c.list)
	return out
}

func (c *Catalog) Len() int {
	return len(c.list)
}

// Get looks up an activity by id.
func (c *Catalog) Get(id string) (model.Activity, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Activity{}, false
	}
	return c.list[i], true
}

// Search filters by a case-insensitive substring of name or description and
// by category. An empty query matches everything; category "" or "all"
// matches every category.
func (c *Catalog) Search(query, category string) []model.Activity {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(strings.TrimSpace(category))
	out := make([]model.Activity, 0)
	for _, a := range c.list {
		if cat != "" && cat != "all" && string(a.Category) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
