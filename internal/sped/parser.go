// Package sped parses SPED EFD text files: one pipe-delimited fiscal record
// per line, each line opening and closing with the separator.
package sped

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fiscoex/internal/domain"
)

const separator = "|"

// Result holds the outcome of parsing one SPED file. Records preserve line
// order; lines that fail the field-count check are excluded and reported in
// Warnings, never fatal for the file.
type Result struct {
	Records  []domain.ExtractedRecord
	Warnings []string
}

// Parse reads pipe-delimited SPED records from r. Unknown record-type codes
// are skipped silently; a known record type with the wrong field count
// produces exactly one warning and is excluded from Records.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, warn := parseLine(line, lineNo)
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
			continue
		}
		if rec != nil {
			res.Records = append(res.Records, *rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sped input: %w", err)
	}
	return res, nil
}

// parseLine splits one line into an ExtractedRecord. It returns (nil, "")
// for unknown record types, and a non-empty warning for malformed lines.
func parseLine(line string, lineNo int) (*domain.ExtractedRecord, string) {
	if !strings.HasPrefix(line, separator) || !strings.HasSuffix(line, separator) {
		return nil, fmt.Sprintf("line %d: record must begin and end with %q", lineNo, separator)
	}

	// |C100|0|1|...| -> ["", "C100", "0", "1", ..., ""]. Dropping only the
	// enclosing separators keeps trailing empty fields, which are common in
	// real files.
	parts := strings.Split(line, separator)
	values := parts[1 : len(parts)-1]
	if len(values) == 0 || values[0] == "" {
		return nil, fmt.Sprintf("line %d: missing record-type code", lineNo)
	}

	recordType := values[0]
	schema, ok := Schema(recordType)
	if !ok {
		return nil, ""
	}
	if len(values) != len(schema) {
		return nil, fmt.Sprintf("line %d: record %s expects %d fields, got %d",
			lineNo, recordType, len(schema), len(values))
	}

	fields := make([]domain.Field, len(schema))
	for i, name := range schema {
		fields[i] = domain.Field{Name: name, Value: values[i]}
	}
	return &domain.ExtractedRecord{
		Kind:       domain.SourceSPED,
		Role:       domain.RoleSPED,
		Block:      recordType[:1],
		RecordType: recordType,
		Fields:     fields,
	}, ""
}
