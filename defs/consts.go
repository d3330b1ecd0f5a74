package defs

// Common labels for logging
const (
	LabelComponent = "component"
	LabelPart      = "part"
	LabelSource    = "source"
	LabelRun       = "run"
	LabelStage     = "stage"
)

// Names of configuration keys, also used in error messages
const (
	KeyInputs        = "inputs"
	KeyOutput        = "output"
	KeyDuplicates    = "duplicates"
	KeyIntervals     = "intervals"
	KeyResponseTimes = "responseTimes"
	KeyRateBasis     = "rateBasis"
	KeyProgressEvery = "progressEvery"
)

// Environment variables recognized as fallback of command-line arguments
const (
	EnvInputs        = "FILE_IN"
	EnvOutput        = "FILE_OUT"
	EnvDuplicates    = "DUPLICATES"
	EnvIntervals     = "INTERVALS"
	EnvResponseTimes = "RESPONSE_TIMES"
)
