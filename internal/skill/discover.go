package skill

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Discover scans repoRoot/skills/*/SKILL.md and returns the parsed
// documents. A file that cannot be read or parsed is skipped with a
// warning; the rest of the corpus still loads.
func Discover(repoRoot string) ([]Document, error) {
	skillsDir := filepath.Join(repoRoot, "skills")
	info, err := os.Stat(skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Document{}, nil
		}
		return nil, fmt.Errorf("cannot stat skills directory %s: %w", skillsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("skills path is not a directory: %s", skillsDir)
	}

	var out []Document
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "SKILL.md" {
			return nil
		}

		doc, err := readSkillFile(repoRoot, path)
		if err != nil {
			logrus.WithField("path", path).WithError(err).Warn("skipping unreadable skill document")
			return nil
		}
		out = append(out, doc)
		return nil
	}

	if err := filepath.WalkDir(skillsDir, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan skills: %w", err)
	}
	return out, nil
}

func readSkillFile(repoRoot, path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	rel, err := filepath.Rel(repoRoot, filepath.Dir(path))
	if err != nil {
		return Document{}, err
	}

	fm, body := splitFrontmatter(string(b))

	name := strings.TrimSpace(fm.Name)
	if name == "" {
		name = filepath.Base(filepath.Dir(path))
	}
	desc := strings.TrimSpace(fm.Description)
	if desc == "" {
		desc = inferDescriptionFromBody(body)
	}

	triggers := fm.Triggers
	if len(triggers) == 0 {
		triggers = fm.Keywords
	}
	if len(triggers) == 0 {
		triggers = inferTriggerTerms(desc, body)
	}
	tags := fm.Tags
	if len(tags) == 0 {
		tags = fm.Metadata.Tags
	}
	category := strings.TrimSpace(fm.Category)
	if category == "" {
		category = strings.TrimSpace(fm.Metadata.Category)
	}

	return Document{
		ID:                Slug(name),
		Path:              filepath.ToSlash(rel),
		Name:              name,
		Description:       desc,
		TriggerTerms:      triggers,
		Tags:              tags,
		Category:          category,
		CompatibilityNote: strings.TrimSpace(fm.Compatibility),
		Body:              body,
	}, nil
}

func inferDescriptionFromBody(body string) string {
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		return ln
	}
	return ""
}
