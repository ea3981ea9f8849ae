// Package ingest reads input records and exported boost factors from files.
package ingest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an input file layout.
type Format string

// Supported input formats.
const (
	JSONFormat Format = "json" // one object, an array of objects, or JSON lines
	CSVFormat  Format = "csv"  // header row; cells holding JSON objects or arrays are decoded
)

// ErrUnsupportedFormat is returned for file extensions that are not recognized.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson":
		return JSONFormat, nil
	case ".csv":
		return CSVFormat, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .json, .jsonl, .ndjson or .csv)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadRecordsFile reads raw inbound records from path.
func ReadRecordsFile(path string) ([]map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadRecords(f, format)
}

// ReadRecords reads raw inbound records in the given format.
func ReadRecords(r io.Reader, format Format) ([]map[string]any, error) {
	switch format {
	case JSONFormat:
		return readJSONRecords(r)
	case CSVFormat:
		return readCSVRecords(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readJSONRecords(r io.Reader) ([]map[string]any, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var items []any
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		records := make([]map[string]any, 0, len(items))
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
			}
			records = append(records, obj)
		}
		return records, nil
	}

	// A single object, or one object per line.
	var records []map[string]any
	for i := 0; ; i++ {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid JSON object: %w", i, err)
		}
		if obj == nil {
			return nil, fmt.Errorf("record %d: expected an object, got null", i)
		}
		records = append(records, obj)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func readCSVRecords(r io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []map[string]any
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := make(map[string]any, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			rec[header[i]] = decodeCell(cell)
		}
		records = append(records, rec)
	}
}

// decodeCell decodes JSON objects and arrays and keeps everything else as text.
func decodeCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return cell
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return cell
	}
	return v
}
