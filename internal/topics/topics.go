// Package topics loads the curated topic→question-id lists used for
// targeted drills. The mapping is fixed configuration, independent of the
// progress ledger.
package topics

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// List is one named drill list.
type List struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	IDs         []string `yaml:"ids"`
}

// Set holds every configured topic list.
type Set struct {
	Topics []List `yaml:"topics"`

	byName map[string]*List
}

// Load reads and validates a topics YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}
	return Parse(data)
}

// Parse decodes a topics document.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}

	s.byName = make(map[string]*List, len(s.Topics))
	for i := range s.Topics {
		t := &s.Topics[i]
		if t.Name == "" {
			return nil, fmt.Errorf("topic %d has no name", i+1)
		}
		if len(t.IDs) == 0 {
			return nil, fmt.Errorf("topic %q has no question ids", t.Name)
		}
		if _, dup := s.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate topic %q", t.Name)
		}
		s.byName[t.Name] = t
	}
	return &s, nil
}

// Get returns the id list for a topic name.
func (s *Set) Get(name string) ([]string, bool) {
	t, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return t.IDs, true
}

// Names returns the topic names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of configured topics.
func (s *Set) Len() int {
	return len(s.byName)
}
