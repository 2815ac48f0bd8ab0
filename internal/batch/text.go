package batch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadText reads one "x y" pair per line, separated by whitespace or a comma.
// Blank lines and lines starting with '#' are skipped. Each sample's ID is its
// 1-based line number.
func ReadText(r io.Reader, crs CRS) ([]Sample, error) {
	var samples []Sample
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want two coordinates, got %q", line, text)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid x %q: %w", line, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid y %q: %w", line, fields[1], err)
		}
		samples = append(samples, Sample{Point: crs.GeoPoint(x, y), ID: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return samples, nil
}

// WriteText writes FormatAddress for each result, one per line. Skipped
// samples print as "*".
func WriteText(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		out := "*"
		if r.Err == nil {
			out = FormatAddress(r.Address)
		}
		if _, err := fmt.Fprintln(bw, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
