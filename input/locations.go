// Package input resolves configured input locations to record files
package input

import (
	"fmt"
	"strings"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/util"
	"github.com/samber/lo"
)

// SplitLocations splits comma-joined location strings, trimming spaces and dropping empty items
func SplitLocations(values ...string) []string {
	var locations []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); len(item) > 0 {
				locations = append(locations, item)
			}
		}
	}
	return locations
}

// ExpandLocations resolves files or patterns to file paths, keeping the order of locations
//
// Matches of one pattern are sorted. A file matched by multiple locations is only kept at its first position.
// The returned error is always *base.ConfigurationError.
func ExpandLocations(locations []string) ([]string, error) {
	if len(locations) == 0 {
		return nil, base.NewConfigurationError(defs.KeyInputs, fmt.Errorf("no input location"))
	}
	var paths []string
	for _, location := range locations {
		matches, err := util.ListFiles(location)
		if err != nil {
			return nil, base.NewConfigurationError(defs.KeyInputs, err)
		}
		if len(matches) == 0 {
			return nil, base.NewConfigurationError(defs.KeyInputs, fmt.Errorf("no file matches '%s'", location))
		}
		paths = append(paths, matches...)
	}
	return lo.Uniq(paths), nil
}
