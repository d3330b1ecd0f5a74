package defs

import (
	"github.com/c2h5oh/datasize"
)

var (
	// ProgressReportEvery defines how often to log a status line, in numbers of written records
	//
	// A final status line is always logged at the end of run
	ProgressReportEvery = 100

	// InputMaxLineSize defines the maximum length of one serialized record in input files
	//
	// Longer lines abort the run since the reader cannot resynchronize
	InputMaxLineSize = 64 * datasize.MB

	// InputInitialLineBufferSize defines the initial size of line buffer used by readers, which grows up to InputMaxLineSize
	InputInitialLineBufferSize = 64 * datasize.KB

	// OutputWriteBufferSize defines the size of buffer between record encoder and compressor
	OutputWriteBufferSize = 1 * datasize.MB
)
