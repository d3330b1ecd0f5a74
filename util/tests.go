package util

import (
	"os"

	"github.com/samber/lo"
)

// IsTestGenerationMode returns true if we're running in "go test -args gen" to generate expected test outputs
func IsTestGenerationMode() bool {
	return lo.Contains(os.Args, "gen")
}
