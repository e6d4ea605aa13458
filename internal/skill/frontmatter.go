package skill

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter mirrors the YAML header of a SKILL.md file. Authors write
// triggers and tags either as lists or comma-separated strings, so both
// forms are accepted.
type frontmatter struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Triggers      stringList `yaml:"triggers"`
	Keywords      stringList `yaml:"keywords"`
	Tags          stringList `yaml:"tags"`
	Category      string     `yaml:"category"`
	Compatibility string     `yaml:"compatibility"`
	Metadata      struct {
		Category string     `yaml:"category"`
		Tags     stringList `yaml:"tags"`
	} `yaml:"metadata"`
}

// stringList unmarshals from either a YAML sequence or a single
// comma-separated scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = splitList(s)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				out = append(out, it)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("cannot parse list from YAML node kind %d", node.Kind)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitFrontmatter separates the YAML header from the markdown body.
// Files without a parseable header yield an empty frontmatter and the
// content unchanged.
func splitFrontmatter(content string) (frontmatter, string) {
	var fm frontmatter
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return fm, content
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return fm, content
	}

	body := strings.TrimPrefix(parts[2], "\n")
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return frontmatter{}, content
	}
	return fm, body
}
