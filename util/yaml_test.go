package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type yamlParentType struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items,omitempty"`
}

func TestYAMLMarshal(t *testing.T) {
	y, err := MarshalYaml(&yamlParentType{
		Name:  "succ",
		Items: []string{"a", "b"},
	})
	assert.Nil(t, err)
	assert.Equal(t, "name: succ\nitems:\n  - a\n  - b\n", y)
}

func TestYAMLUnmarshal(t *testing.T) {
	var yp yamlParentType
	assert.NoError(t, UnmarshalYamlReader(strings.NewReader("name: hi\nitems: [x]\n"), &yp))
	assert.Equal(t, yamlParentType{Name: "hi", Items: []string{"x"}}, yp)

	assert.ErrorContains(t, UnmarshalYamlReader(strings.NewReader("name: hi\nunknown: 1\n"), &yp), "field unknown not found")
}

func TestYAMLUnmarshalEmpty(t *testing.T) {
	yp := yamlParentType{Name: "preset"}
	assert.NoError(t, UnmarshalYamlReader(strings.NewReader(""), &yp))
	assert.NoError(t, UnmarshalYamlReader(strings.NewReader("# nothing configured\n"), &yp))
	assert.Equal(t, yamlParentType{Name: "preset"}, yp)
}

func TestYAMLUnmarshalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yml")
	assert.NoError(t, os.WriteFile(path, []byte("name: file\n"), 0o644))

	var yp yamlParentType
	assert.NoError(t, UnmarshalYamlFile(path, &yp))
	assert.Equal(t, "file", yp.Name)

	assert.ErrorIs(t, UnmarshalYamlFile(filepath.Join(t.TempDir(), "missing.yml"), &yp), os.ErrNotExist)
}
