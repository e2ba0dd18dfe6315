package password

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template couples a generation policy with a human-readable description.
type Template struct {
	Policy      Policy
	Description string
}

// Built-in compliance templates. The table is process-wide and read-only:
// it is populated here, optionally extended once via LoadTemplates before
// the first Resolve, and frozen afterwards.
var builtinTemplates = map[string]Template{
	"nist-800-63b": {
		Policy:      Policy{Length: 12, Type: TypeStrong, MinUpper: 1, MinLower: 1, MinDigit: 1, MinSpecial: 1, NoSimilar: true},
		Description: "NIST 800-63B standard - US federal systems, enterprise compliance",
	},
	"pci-dss": {
		Policy:      Policy{Length: 12, Type: TypeStrong, MinUpper: 1, MinLower: 1, MinDigit: 1, MinSpecial: 1},
		Description: "PCI DSS standard - Payment systems, credit card processing",
	},
	"owasp": {
		Policy:      Policy{Length: 14, Type: TypeStrong, MinUpper: 2, MinLower: 2, MinDigit: 2, MinSpecial: 2, NoSimilar: true},
		Description: "OWASP guidelines - Web applications, API authentication",
	},
	"high-security": {
		Policy:      Policy{Length: 20, Type: TypeStrong, MinUpper: 3, MinLower: 3, MinDigit: 3, MinSpecial: 3, NoSimilar: true},
		Description: "Maximum security - Admin accounts, root passwords, master keys",
	},
	"user-friendly": {
		Policy:      Policy{Length: 12, Type: TypeStrong, MinUpper: 1, MinLower: 1, MinDigit: 1, NoSimilar: true, Exclude: DefaultSpecial},
		Description: "Easy to type - End users, temporary accounts, shared devices",
	},
	"database": {
		Policy:      Policy{Length: 16, Type: TypeStrong, MinUpper: 2, MinLower: 2, MinDigit: 2, MinSpecial: 1, Exclude: "\"'\\`"},
		Description: "SQL-safe - Database connections, avoids quotes/backslashes",
	},
	"wifi": {
		Policy:      Policy{Length: 16, Type: TypeStrong, MinUpper: 2, MinLower: 2, MinDigit: 2, NoSimilar: true, Exclude: DefaultSpecial},
		Description: "WiFi networks - Easy to type on phones, no special characters",
	},
}

var templateTable = struct {
	mu     sync.Mutex
	m      map[string]Template
	frozen bool
}{m: cloneTemplates(builtinTemplates)}

func cloneTemplates(src map[string]Template) map[string]Template {
	dst := make(map[string]Template, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// templateFile is the YAML schema accepted by LoadTemplates.
type templateFile struct {
	Templates map[string]struct {
		Length      int    `yaml:"length"`
		MinUpper    int    `yaml:"min_upper"`
		MinLower    int    `yaml:"min_lower"`
		MinDigit    int    `yaml:"min_digit"`
		MinSpecial  int    `yaml:"min_special"`
		NoSimilar   bool   `yaml:"no_similar"`
		Exclude     string `yaml:"exclude"`
		Description string `yaml:"description"`
	} `yaml:"templates"`
}

// LoadTemplates merges additional templates from a YAML file into the table.
// It must be called before the first Resolve; afterwards the table is frozen
// and ErrTemplatesFrozen is returned. Entries with the same name as a
// built-in override it; every merged policy is validated up front.
func LoadTemplates(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates file: %w", err)
	}
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse templates file: %w", err)
	}

	templateTable.mu.Lock()
	defer templateTable.mu.Unlock()
	if templateTable.frozen {
		return ErrTemplatesFrozen
	}
	for name, t := range file.Templates {
		p := Policy{
			Length:     t.Length,
			Type:       TypeStrong,
			MinUpper:   t.MinUpper,
			MinLower:   t.MinLower,
			MinDigit:   t.MinDigit,
			MinSpecial: t.MinSpecial,
			NoSimilar:  t.NoSimilar,
			Exclude:    t.Exclude,
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}
		templateTable.m[name] = Template{Policy: p, Description: t.Description}
	}
	return nil
}

// Resolve looks up a template by name and returns a copy of its policy.
// The first call freezes the table. Callers may tighten the returned policy
// but the table itself is never mutated.
func Resolve(name string) (Policy, error) {
	templateTable.mu.Lock()
	defer templateTable.mu.Unlock()
	templateTable.frozen = true
	t, ok := templateTable.m[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTemplate, name, templateNamesLocked())
	}
	return t.Policy, nil
}

// Templates returns the table as name to description, sorted by name.
func Templates() []struct{ Name, Description string } {
	templateTable.mu.Lock()
	defer templateTable.mu.Unlock()
	names := templateNamesLocked()
	out := make([]struct{ Name, Description string }, 0, len(names))
	for _, name := range names {
		out = append(out, struct{ Name, Description string }{name, templateTable.m[name].Description})
	}
	return out
}

// Describe returns the full template, for detail listings.
func Describe(name string) (Template, error) {
	templateTable.mu.Lock()
	defer templateTable.mu.Unlock()
	t, ok := templateTable.m[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

func templateNamesLocked() []string {
	names := make([]string, 0, len(templateTable.m))
	for name := range templateTable.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
