package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ephys/ephys/trace"
)

// loadTrace reads a recording from disk, dispatching on the file
// extension. Supported formats are Axon Text File (.atf) and two-column
// CSV (time, current).
func loadTrace(path string) (trace.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return trace.Trace{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".atf":
		return parseATF(f)
	case ".csv":
		return parseCSV(f)
	default:
		return trace.Trace{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// parseATF reads an Axon Text File: an "ATF <version>" magic line, a
// line with the header-record count and column count, that many header
// records, one line of column titles and whitespace-separated numeric
// rows. The first column is time, the second current.
func parseATF(r io.Reader) (trace.Trace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !sc.Scan() {
		return trace.Trace{}, fmt.Errorf("atf: empty file")
	}

	if !strings.HasPrefix(strings.TrimSpace(sc.Text()), "ATF") {
		return trace.Trace{}, fmt.Errorf("atf: missing ATF magic")
	}

	if !sc.Scan() {
		return trace.Trace{}, fmt.Errorf("atf: missing header-count line")
	}

	counts := strings.Fields(sc.Text())
	if len(counts) < 2 {
		return trace.Trace{}, fmt.Errorf("atf: malformed header-count line %q", sc.Text())
	}

	headerLines, err := strconv.Atoi(counts[0])
	if err != nil || headerLines < 0 {
		return trace.Trace{}, fmt.Errorf("atf: bad header count %q", counts[0])
	}

	columns, err := strconv.Atoi(counts[1])
	if err != nil || columns < 2 {
		return trace.Trace{}, fmt.Errorf("atf: need at least 2 columns, got %q", counts[1])
	}

	// Skip the header records and the column-title line.
	for i := 0; i < headerLines+1; i++ {
		if !sc.Scan() {
			return trace.Trace{}, fmt.Errorf("atf: truncated header")
		}
	}

	var time, current []float64
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 {
			return trace.Trace{}, fmt.Errorf("atf: data row with %d columns", len(fields))
		}

		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return trace.Trace{}, fmt.Errorf("atf: bad time value %q", fields[0])
		}

		c, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return trace.Trace{}, fmt.Errorf("atf: bad current value %q", fields[1])
		}

		time = append(time, t)
		current = append(current, c)
	}

	if err := sc.Err(); err != nil {
		return trace.Trace{}, err
	}

	return trace.New(time, current)
}

// parseCSV reads a two-column time,current file. A non-numeric first row
// is treated as a header and skipped.
func parseCSV(r io.Reader) (trace.Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var time, current []float64

	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return trace.Trace{}, err
		}

		if len(record) < 2 {
			return trace.Trace{}, fmt.Errorf("csv: row with %d columns", len(record))
		}

		t, terr := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		c, cerr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)

		if terr != nil || cerr != nil {
			if first {
				first = false
				continue
			}

			return trace.Trace{}, fmt.Errorf("csv: non-numeric row %v", record)
		}

		first = false
		time = append(time, t)
		current = append(current, c)
	}

	return trace.New(time, current)
}
