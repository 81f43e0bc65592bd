package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiter separates the fields of a campsite text line
const Delimiter = '|'

var ErrMalformedLine = fmt.Errorf("campdb err: %s", "malformed campsite line")

/*
text import format, one campsite per line:
	number | description | electric | rate
	electric is true when the token starts with 't' or 'T'
*/

// ParseLine parses a single delimited campsite line
func ParseLine(line string) (*Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.SplitN(line, string(Delimiter), 4)
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedLine, len(fields))
	}

	number, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: number: %v", ErrMalformedLine, err)
	}

	flag := strings.TrimSpace(fields[2])
	hasElectric := len(flag) > 0 && (flag[0] == 't' || flag[0] == 'T')

	rate, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rate: %v", ErrMalformedLine, err)
	}

	return NewRecord(int32(number), fields[1], hasElectric, rate), nil
}

// ReadRecords parses every non blank line of r
func ReadRecords(r io.Reader) ([]*Record, error) {
	var records []*Record

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// FormatLine is the inverse of ParseLine
func FormatLine(r *Record) string {
	return strconv.Itoa(int(r.Number)) + string(Delimiter) +
		r.Description + string(Delimiter) +
		strconv.FormatBool(r.HasElectric) + string(Delimiter) +
		strconv.FormatFloat(r.Rate, 'f', -1, 64)
}
