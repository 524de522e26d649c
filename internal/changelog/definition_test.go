package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefinition(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validDefinition = `version: "0.0.4"
release_date: "2026-08-20"
title: "Bugfix release"
description: "Small fixes."
changes:
  fixed:
    - "clock report off-by-one at the window edge"
  added:
    - "support command"
`

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "0.0.4.yaml", validDefinition)

	def, err := LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.4", def.Version)
	assert.Equal(t, "Bugfix release", def.Title)
	assert.Len(t, def.Changes["fixed"], 1)
}

func TestLoadDefinitionVersionMustMatchFilename(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "0.0.5.yaml", validDefinition)

	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match filename")
}

func TestLoadDefinitionRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "0.0.4.yaml", validDefinition+"surprise: true\n")

	_, err := LoadDefinition(path)
	assert.Error(t, err)
}

func TestLoadDefinitionRejectsMissingRequiredFields(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "0.0.4.yaml", "version: \"0.0.4\"\ntitle: \"no date\"\n")

	_, err := LoadDefinition(path)
	assert.Error(t, err)
}

func TestLoadDefinitionsSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "0.0.4.yaml", validDefinition)
	writeDefinition(t, dir, "0.0.5.yaml", "version: \"0.0.9\"\nrelease_date: \"2026-08-21\"\ntitle: \"wrong name\"\n")
	// Non-version files are not definitions.
	writeDefinition(t, dir, "template.yaml", "anything: goes\n")
	writeDefinition(t, dir, "notes.txt", "not yaml at all")

	defs, problems := LoadDefinitions(dir)
	require.Len(t, defs, 1)
	assert.Equal(t, "0.0.4", defs[0].Version)
	assert.Len(t, problems, 1)
}

func TestCompareIsNumericPerComponent(t *testing.T) {
	assert.Equal(t, 1, Compare("0.0.10", "0.0.9"))
	assert.Equal(t, -1, Compare("0.9.0", "0.10.0"))
	assert.Equal(t, 0, Compare("1.2.3", "1.2.3"))
	assert.Equal(t, 1, Compare("1.0.0", "0.99.99"))
}

func TestLatestAndMaxVersion(t *testing.T) {
	defs := []*Definition{
		{Version: "0.0.9"},
		{Version: "0.0.10"},
		{Version: "0.0.2"},
	}
	assert.Equal(t, "0.0.10", Latest(defs).Version)
	assert.Nil(t, Latest(nil))

	assert.Equal(t, "0.0.10", MaxVersion([]string{"0.0.2", "0.0.10", "0.0.9"}))
	assert.Equal(t, "", MaxVersion(nil))
}

func TestRenderMessage(t *testing.T) {
	def := &Definition{
		Version:     "0.1.0",
		ReleaseDate: "2026-08-10",
		Title:       "First release",
		Description: "The first tracked release.",
		Changes: map[string][]string{
			"added":     {"clock commands"},
			"dev-notes": {"migrations now embedded"},
		},
		Notes:        "Run migrations first.",
		Contributors: []string{"alice", "bob"},
	}

	msg := RenderMessage(def)
	assert.Contains(t, msg, "The first tracked release.")
	assert.Contains(t, msg, "Added:")
	assert.Contains(t, msg, "Development:")
	assert.Contains(t, msg, "Notes: Run migrations first.")
	assert.Contains(t, msg, "alice, bob")
	assert.Contains(t, msg, "Version 0.1.0 | released 2026-08-10")
}
