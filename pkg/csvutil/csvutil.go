// Package csvutil parses small CSV catalogs exported from spreadsheets.
// The delimiter is auto-detected per file and fields may be
// double-quoted. Input sizes are catalogs (tens to low thousands of
// rows), so parsing is one-shot rather than streaming.
package csvutil

import "strings"

// Record is one data row keyed by the header row. The column order of
// the file is preserved so lookups that accept several header
// spellings can resolve first-column-wins deterministically.
type Record struct {
	headers []string
	values  map[string]string
}

// Headers returns the header names in file column order.
func (r Record) Headers() []string { return r.headers }

// Get returns the field under a header, "" when the header is absent.
func (r Record) Get(header string) string { return r.values[header] }

const bom = "\uFEFF"

// Parse tokenizes raw CSV text into header-keyed records.
//
// An optional UTF-8 BOM is stripped, "\r\n" and "\r" line endings are
// normalized, and the delimiter is chosen by comparing "," and ";"
// counts in the header line (";" wins only when strictly more
// frequent). Quoted fields may embed the delimiter and escape quotes
// as "". Every header and field is whitespace-trimmed. Empty input or
// input without at least one data line yields no records.
func Parse(text string) []Record {
	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}

	delim := byte(',')
	if strings.Count(lines[0], ";") > strings.Count(lines[0], ",") {
		delim = ';'
	}

	headers := parseLine(lines[0], delim)
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, bom))
	}

	var records []Record
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := parseLine(line, delim)
		rec := Record{headers: headers, values: make(map[string]string, len(headers))}
		for i, h := range headers {
			if i < len(values) {
				rec.values[h] = values[i]
			} else {
				rec.values[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func parseLine(line string, delim byte) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delim && !inQuotes:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}
