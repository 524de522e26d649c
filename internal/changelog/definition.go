// Package changelog loads release-definition documents and announces new
// releases exactly once.
package changelog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "embed"

	"github.com/kaptinlin/jsonschema"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Change categories in presentation order.
var Categories = []string{"added", "improved", "fixed", "changed", "removed", "security", "dev-notes"}

var versionFile = regexp.MustCompile(`^\d+\.\d+\.\d+\.yaml$`)

//go:embed schema.json
var definitionSchema []byte

// Definition is one release's structured changelog: its version, metadata
// and categorized change lists.
type Definition struct {
	Version      string              `yaml:"version"`
	ReleaseDate  string              `yaml:"release_date"`
	Title        string              `yaml:"title"`
	Description  string              `yaml:"description"`
	Changes      map[string][]string `yaml:"changes"`
	Notes        string              `yaml:"notes"`
	Contributors []string            `yaml:"contributors"`
}

// LoadDefinition reads and parses one release-definition yaml file with
// strict validation: unknown yaml fields are rejected, the document must
// satisfy the embedded schema, and the version field must match the
// filename.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read release definition: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse release definition: %w", err)
	}

	wantVersion := strings.TrimSuffix(filepath.Base(path), ".yaml")
	if def.Version != wantVersion {
		return nil, fmt.Errorf("version %q does not match filename %q", def.Version, filepath.Base(path))
	}
	return &def, nil
}

func validateSchema(data []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse release definition: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(definitionSchema)
	if err != nil {
		return fmt.Errorf("failed to compile release-definition schema: %w", err)
	}

	result := schema.Validate(doc)
	if !result.IsValid() {
		var msgs []string
		for field, evalErr := range result.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, evalErr.Error()))
		}
		return fmt.Errorf("release definition invalid: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// LoadDefinitions scans dir for <major>.<minor>.<patch>.yaml files and
// loads each. Invalid files are reported through the returned error slice
// and skipped so one bad definition never blocks the rest.
func LoadDefinitions(dir string) ([]*Definition, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read changelog dir: %w", err)}
	}

	var defs []*Definition
	var problems []error
	for _, entry := range entries {
		if entry.IsDir() || !versionFile.MatchString(entry.Name()) {
			continue
		}
		def, err := LoadDefinition(filepath.Join(dir, entry.Name()))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		defs = append(defs, def)
	}
	return defs, problems
}

// Compare orders two major.minor.patch version strings numerically per
// component. Returns -1, 0 or +1.
func Compare(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// Latest returns the definition with the highest version, or nil when defs
// is empty.
func Latest(defs []*Definition) *Definition {
	var latest *Definition
	for _, def := range defs {
		if latest == nil || Compare(def.Version, latest.Version) > 0 {
			latest = def
		}
	}
	return latest
}

// MaxVersion returns the highest of the given version strings, or "".
func MaxVersion(versions []string) string {
	max := ""
	for _, v := range versions {
		if max == "" || Compare(v, max) > 0 {
			max = v
		}
	}
	return max
}
