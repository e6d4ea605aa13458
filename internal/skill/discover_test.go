package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, repo, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(repo, "skills", dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
}

func TestDiscover_ParsesFrontmatter(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "husky", `---
name: husky
description: "Manage git hooks. Use when user asks to: set up pre-commit checks."
triggers:
  - husky
  - git hooks
  - pre-commit
metadata:
  category: devops
  tags: [git, tooling]
compatibility: Requires Node 18+
---

# Husky

Guidance body.
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	d := docs[0]
	assert.Equal(t, "husky", d.ID)
	assert.Equal(t, "husky", d.Name)
	assert.Equal(t, "skills/husky", d.Path)
	assert.Equal(t, []string{"husky", "git hooks", "pre-commit"}, d.TriggerTerms)
	assert.Equal(t, []string{"git", "tooling"}, d.Tags)
	assert.Equal(t, "devops", d.Category)
	assert.Equal(t, "Requires Node 18+", d.CompatibilityNote)
	assert.Contains(t, d.Body, "Guidance body.")
}

func TestDiscover_FlatKeywordsAndTags(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "cypress", `---
name: cypress
description: End-to-end browser testing.
keywords: cypress, e2e testing, browser testing
tags: testing, frontend
category: development
---
Body.
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"cypress", "e2e testing", "browser testing"}, docs[0].TriggerTerms)
	assert.Equal(t, []string{"testing", "frontend"}, docs[0].Tags)
	assert.Equal(t, "development", docs[0].Category)
}

func TestDiscover_FallbacksForMissingFields(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "bare-tool", `---
triggers: [bare]
---

# Heading is skipped

First real paragraph becomes the description.
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "bare-tool", docs[0].Name)
	assert.Equal(t, "bare-tool", docs[0].ID)
	assert.Equal(t, "First real paragraph becomes the description.", docs[0].Description)
}

func TestDiscover_InfersTriggersFromGeneratedLayout(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	// No triggers: key. Trigger phrases live in the description prose
	// and the "## When to Use" bullets, the layout skill generators
	// emit.
	writeSkill(t, repo, "husky", `---
name: husky
description: Work with husky — integrate, configure, and automate. Use when asked to set up husky, use husky API, integrate husky into a project, troubleshoot husky errors, or build husky automation.
license: Apache-2.0
metadata:
  author: SharpSkills
  version: 1.0.0
  category: devops
  tags: [husky]
---

# Husky Skill

## Quick Start

`+"```bash\nnpm install husky\n```"+`

## When to Use
Use this skill when asked to:
- Set up husky
- Configure husky authentication
- Troubleshoot husky errors

## Core Patterns

### Pattern 1: Basic Usage (Source: official)
- this bullet belongs to another section and must not leak in
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	d := docs[0]
	assert.Equal(t, []string{
		"set up husky",
		"use husky API",
		"integrate husky into a project",
		"troubleshoot husky errors",
		"build husky automation",
		"Configure husky authentication",
	}, d.TriggerTerms)
}

func TestDiscover_InfersTriggersFromColonForm(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "cypress", `---
name: cypress
description: "End-to-end browser testing. Use when user asks to: run e2e tests, debug flaky tests."
---
Body without a when-to-use section.
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"run e2e tests", "debug flaky tests"}, docs[0].TriggerTerms)
}

func TestDiscover_ExplicitTriggersSkipInference(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "husky", `---
name: husky
description: "Manage git hooks. Use when asked to set up pre-commit checks."
triggers: [husky, git hooks]
---

## When to Use
- these bullets are ignored when triggers are explicit
`)

	docs, err := Discover(repo)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"husky", "git hooks"}, docs[0].TriggerTerms)
}

func TestDiscover_SkipsUnparseableFrontmatterGracefully(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "repo")
	writeSkill(t, repo, "broken", "---\nname: [unclosed\n---\nStill has a body line.\n")
	writeSkill(t, repo, "fine", "---\nname: fine\ndescription: ok\n---\nBody.\n")

	docs, err := Discover(repo)
	require.NoError(t, err)
	// The broken header degrades to body-only parsing, not a failure.
	require.Len(t, docs, 2)
}

func TestDiscover_MissingRepoIsEmpty(t *testing.T) {
	docs, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Husky", "husky"},
		{"GitHub Actions", "github-actions"},
		{"  Node.js  ", "node-js"},
		{"C++ Toolkit!", "c-toolkit"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slug(tc.in), "Slug(%q)", tc.in)
	}
}
