// Package stations loads the reference table of weather stations
// that measurements are generated around.
package stations

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names looked up in the header row.
const (
	NameColumn = "station_name"
	MeanColumn = "mean_temp"
)

// Station is one reference entry: a name and its mean temperature.
type Station struct {
	Name string
	Mean float64
}

// DataError is returned when the reference table cannot be read or
// one of its rows is unusable.
type DataError struct {
	Path string
	// Line is the 1-based line in the file, 0 when not tied to a row.
	Line int
	Err  error
}

func (e *DataError) Error() string {
	if e.Path == "" {
		return "stations: " + e.Err.Error()
	}
	if e.Line > 0 {
		return "stations " + e.Path + ":" + strconv.Itoa(e.Line) + ": " + e.Err.Error()
	}
	return "stations " + e.Path + ": " + e.Err.Error()
}

func (e *DataError) Cause() error  { return e.Err }
func (e *DataError) Unwrap() error { return e.Err }

// IsDataError reports whether err is or wraps a *DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// Load reads the stations table at path.
func Load(path string) ([]Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataError{Path: path, Err: errors.Wrap(err, "open")}
	}
	defer f.Close()

	return Parse(path, f)
}

// Parse reads a CSV stations table from r. Name is only used in errors.
// Rows are returned in file order, duplicates included.
func Parse(name string, r io.Reader) ([]Station, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataError{Path: name, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &DataError{Path: name, Line: 1, Err: errors.Wrap(err, "read header")}
	}

	nameIdx, meanIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case NameColumn:
			nameIdx = i
		case MeanColumn:
			meanIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, &DataError{Path: name, Line: 1, Err: errors.Errorf("missing column %q", NameColumn)}
	}
	if meanIdx < 0 {
		return nil, &DataError{Path: name, Line: 1, Err: errors.Errorf("missing column %q", MeanColumn)}
	}

	var res []Station
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if perr, ok := err.(*csv.ParseError); ok {
				return nil, &DataError{Path: name, Line: perr.StartLine, Err: errors.Wrap(perr.Err, "read row")}
			}
			return nil, &DataError{Path: name, Err: errors.Wrap(err, "read row")}
		}
		line, _ := reader.FieldPos(0)

		if nameIdx >= len(record) || meanIdx >= len(record) {
			return nil, &DataError{Path: name, Line: line, Err: errors.Errorf("expected at least %d fields, got %d", max(nameIdx, meanIdx)+1, len(record))}
		}

		stationName := strings.TrimSpace(record[nameIdx])
		if stationName == "" {
			return nil, &DataError{Path: name, Line: line, Err: errors.New("empty station name")}
		}

		mean, err := strconv.ParseFloat(strings.TrimSpace(record[meanIdx]), 64)
		if err != nil {
			return nil, &DataError{Path: name, Line: line, Err: errors.Wrapf(err, "parse %s", MeanColumn)}
		}

		res = append(res, Station{Name: stationName, Mean: mean})
	}

	if len(res) == 0 {
		return nil, &DataError{Path: name, Err: errors.New("no stations")}
	}

	return res, nil
}
