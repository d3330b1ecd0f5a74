package test

import (
	"io"

	"github.com/c2h5oh/datasize"
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/input/ndjsoninput"
)

// loadInputRecords loads all valid records from the files into memory for benchmarks
func loadInputRecords(paths []string, maxLineSize datasize.ByteSize) []*base.HTTPRecord {
	records := make([]*base.HTTPRecord, 0, 1000)
	for _, path := range paths {
		source, err := ndjsoninput.Open(path, maxLineSize)
		if err != nil {
			logger.Fatal(err)
		}
		numRecords := 0
		for {
			record, rerr := source.Next()
			if rerr == io.EOF {
				break
			}
			if rerr != nil {
				if base.IsRecordError(rerr) {
					continue
				}
				logger.Fatal(rerr)
			}
			records = append(records, record)
			numRecords++
		}
		source.Close()
		logger.Infof("loaded %s: %d records", path, numRecords)
	}
	return records
}

// repeatingSource serves copies of the same records for the given times, as one source
type repeatingSource struct {
	location string
	records  []*base.HTTPRecord
	repeat   int
	round    int
	next     int
}

func newRepeatingSource(location string, records []*base.HTTPRecord, repeat int) *repeatingSource {
	return &repeatingSource{
		location: location,
		records:  records,
		repeat:   repeat,
	}
}

func (src *repeatingSource) Location() string {
	return src.location
}

func (src *repeatingSource) Open() (base.RecordSource, error) {
	src.round = 0
	src.next = 0
	return src, nil
}

func (src *repeatingSource) Next() (*base.HTTPRecord, error) {
	if src.next >= len(src.records) {
		src.round++
		src.next = 0
	}
	if src.round >= src.repeat || len(src.records) == 0 {
		return nil, io.EOF
	}
	record := src.records[src.next].Copy()
	src.next++
	return record, nil
}

func (src *repeatingSource) Close() error {
	return nil
}

// nullSink counts and discards records
type nullSink struct {
	count int64
}

func (sink *nullSink) Write(*base.HTTPRecord) error {
	sink.count++
	return nil
}

func (sink *nullSink) Close() error {
	return nil
}
