// Package sensor parses sensor package files.
//
// Each non-blank line holds one package: a workout code followed by its
// readings, separated by semicolons:
//
//	SWM;720;1;80;25;40
//	RUN;15000;1;75
//	WLK;9000;1,5;75;180
//
// Readings may use a decimal comma. Lines starting with # are comments.
package sensor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/fittracker/internal/workout"
)

// Parse reads every package from r. Codes are upper-cased but not checked
// against the variant table; that happens when a package is calculated.
func Parse(r io.Reader) ([]workout.Package, error) {
	scanner := bufio.NewScanner(r)
	var packages []workout.Package
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		code := strings.ToUpper(strings.TrimSpace(fields[0]))
		if code == "" {
			return nil, fmt.Errorf("line %d: missing workout code", lineNo)
		}

		data := make([]float64, 0, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := parseReading(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: reading %d: %w", lineNo, i+1, err)
			}
			data = append(data, v)
		}
		packages = append(packages, workout.Package{Code: code, Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading packages: %w", err)
	}
	return packages, nil
}

// parseReading parses a number that may use a decimal comma ("1,5").
func parseReading(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
