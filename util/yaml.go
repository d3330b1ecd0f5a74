package util

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MarshalYaml marshals the given source to a YAML string
func MarshalYaml(source interface{}) (string, error) {
	writer := &bytes.Buffer{}
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(source); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return writer.String(), nil
}

// UnmarshalYamlFile loads and unmarshals YAML from file to interface or pointer to struct
func UnmarshalYamlFile(path string, output interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return UnmarshalYamlReader(file, output)
}

// UnmarshalYamlReader loads and unmarshals YAML from IO reader to interface or pointer to struct
//
// A document without any node (empty or only comments) leaves output untouched. Unknown fields are rejected.
func UnmarshalYamlReader(reader io.Reader, output interface{}) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true) // only works outside of custom unmarshalers
	if err := decoder.Decode(output); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
