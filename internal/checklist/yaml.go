package checklist

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/yegors/atcopilot/internal/frequencies"
	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a YAML rule table
type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Key    string   `yaml:"key"`
	Phase  string   `yaml:"phase"`
	Params []string `yaml:"params"`
	Format string   `yaml:"format"`
}

// templateFuncs are available inside rule formats
var templateFuncs = template.FuncMap{
	// first returns the first station of a list role, or the placeholder
	"first": func(v any) frequencies.Frequency {
		switch t := v.(type) {
		case []frequencies.Frequency:
			if len(t) > 0 {
				return t[0]
			}
		case frequencies.Frequency:
			return t
		}
		return frequencies.Frequency{}
	},
	"upper": strings.ToUpper,
	"or_default": func(def string, v any) string {
		s := strings.TrimSpace(fmt.Sprint(v))
		if f, ok := v.(frequencies.Frequency); ok {
			s = f.Name
		}
		if s == "" {
			return def
		}
		return s
	},
}

// LoadRules reads a YAML rule table from disk
func LoadRules(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	t, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return t, nil
}

// ParseRules builds a table from YAML. Each format is a text/template evaluated over
// the declared fields; referencing a field that was not supplied fails the line.
func ParseRules(data []byte) (*Table, error) {
	var file ruleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, rs := range file.Rules {
		if rs.Key == "" {
			return nil, fmt.Errorf("rule %d has no key", i)
		}
		phase, err := frequencies.ParsePhase(rs.Phase)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rs.Key, err)
		}

		tmpl, err := template.New(rs.Key).
			Option("missingkey=error").
			Funcs(templateFuncs).
			Parse(rs.Format)
		if err != nil {
			return nil, fmt.Errorf("rule %q: bad format: %w", rs.Key, err)
		}

		params := make([]Field, len(rs.Params))
		for j, p := range rs.Params {
			params[j] = Field(strings.TrimSpace(p))
		}

		rules = append(rules, Rule{
			Key:    rs.Key,
			Params: params,
			Phase:  phase,
			Format: templateFormat(tmpl),
		})
	}

	return NewTable(rules...)
}

func templateFormat(tmpl *template.Template) FormatFunc {
	return func(a Args) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, a.templateData()); err != nil {
			return "", err
		}
		return strings.TrimSpace(buf.String()), nil
	}
}
