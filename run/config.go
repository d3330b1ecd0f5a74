package run

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/util"
)

// Config defines the root of the optional config file
//
// Every string value here can be overridden by environment variables and command-line arguments, see Settings
type Config struct {
	Inputs          []string          `yaml:"inputs"` // files or patterns, items may be comma-joined
	Output          string            `yaml:"output"`
	Duplicates      string            `yaml:"duplicates"`
	Intervals       string            `yaml:"intervals"`
	ResponseTimes   string            `yaml:"responseTimes"`
	RateBasis       string            `yaml:"rateBasis"`       // "written" or "read"
	ProgressEvery   int               `yaml:"progressEvery"`   // 0 = defs.ProgressReportEvery
	WriteBufferSize datasize.ByteSize `yaml:"writeBufferSize"` // 0 = defs.OutputWriteBufferSize
	MaxLineSize     datasize.ByteSize `yaml:"maxLineSize"`     // 0 = defs.InputMaxLineSize
}

// LoadConfigFile loads config from the path; the values are verified later by NewLoader
func LoadConfigFile(filepath string) (*Config, error) {
	cref := &Config{}
	if err := util.UnmarshalYamlFile(filepath, cref); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cref, nil
}

// lookup fetches the string form of a key, or empty if unset
func (cfg *Config) lookup(key string) string {
	switch key {
	case defs.KeyInputs:
		return strings.Join(cfg.Inputs, ",")
	case defs.KeyOutput:
		return cfg.Output
	case defs.KeyDuplicates:
		return cfg.Duplicates
	case defs.KeyIntervals:
		return cfg.Intervals
	case defs.KeyResponseTimes:
		return cfg.ResponseTimes
	case defs.KeyRateBasis:
		return cfg.RateBasis
	case defs.KeyProgressEvery:
		if cfg.ProgressEvery == 0 {
			return ""
		}
		return strconv.Itoa(cfg.ProgressEvery)
	default:
		return ""
	}
}
