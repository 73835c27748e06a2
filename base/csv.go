// Copyright 2021 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/juju/errors"
)

// Escape text for csv. Fields containing the separator, quotes or line breaks are quoted.
func Escape(text, sep string) string {
	// check if need escape
	if !strings.Contains(text, sep) &&
		!strings.Contains(text, "\"") &&
		!strings.Contains(text, "\n") &&
		!strings.Contains(text, "\r") {
		return text
	}
	// start to encode
	builder := strings.Builder{}
	builder.WriteRune('"')
	for _, c := range text {
		if c == '"' {
			builder.WriteString("\"\"")
		} else {
			builder.WriteRune(c)
		}
	}
	builder.WriteRune('"')
	return builder.String()
}

// ScanRawLines is a split function for bufio.Scanner that returns each line with its terminator, so that
// ReadLines keeps line breaks inside quoted fields as they are.
func ScanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ReadLines parse fields of each line for csv file. Line breaks inside quoted fields are kept if the scanner splits
// with ScanRawLines, otherwise they are written as "\r\n". A quoted field left open at the end of input is an error.
func ReadLines(sc *bufio.Scanner, sep string, handler func(int, []string) bool) error {
	lineCount := 0               // line number of current position
	recordStart := 0             // line number where current record starts
	fields := make([]string, 0)  // fields for current line
	builder := strings.Builder{} // string builder for current field
	quoted := false              // whether current position in quote
	lineBreak := ""              // line break of previous line
	separator := []rune(sep)
	for sc.Scan() {
		// read line
		text := sc.Text()
		body := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		line := []rune(body)
		// start of line
		if quoted {
			if lineBreak == "" {
				lineBreak = "\r\n"
			}
			builder.WriteString(lineBreak)
		} else {
			recordStart = lineCount
		}
		lineBreak = text[len(body):]
		// parse line
		for i := 0; i < len(line); i++ {
			if !quoted && hasPrefix(line[i:], separator) {
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
				i += len(separator) - 1
			} else if line[i] == '"' {
				if quoted {
					if i+1 >= len(line) || line[i+1] != '"' {
						// end of quoted
						quoted = false
					} else {
						i++
						builder.WriteRune('"')
					}
				} else {
					// start of quoted
					quoted = true
				}
			} else {
				builder.WriteRune(line[i])
			}
		}
		// end of line
		if !quoted {
			fields = append(fields, builder.String())
			builder.Reset()
			if !handler(lineCount, fields) {
				return nil
			}
			fields = []string{}
		}
		// increase line count
		lineCount++
	}
	if err := sc.Err(); err != nil {
		return errors.Trace(err)
	}
	if quoted {
		return errors.NotValidf("unterminated quoted field at line %d", recordStart+1)
	}
	return nil
}

func hasPrefix(line, prefix []rune) bool {
	if len(prefix) == 0 || len(line) < len(prefix) {
		return false
	}
	for i := range prefix {
		if line[i] != prefix[i] {
			return false
		}
	}
	return true
}
