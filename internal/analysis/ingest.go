package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ReadOptions controls CSV ingestion.
type ReadOptions struct {
	// Separator between fields. If 0, ',' is used.
	Separator rune
	// MaxRows limits data rows read; negative means unlimited.
	MaxRows int
}

// DefaultReadOptions reads comma-separated files without a row limit.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Separator: ',', MaxRows: -1}
}

// naTokens are field values treated as missing in addition to the empty string.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// isMissing matches the empty field and NA tokens exactly; whitespace is a value.
func isMissing(v string) bool {
	if v == "" {
		return true
	}
	_, ok := naTokens[v]
	return ok
}

// ReadCSV loads a delimited text file into a Table. The path is checked before
// any read; a missing file yields *InputNotFoundError, malformed content *ParseError.
func ReadCSV(path string, opt ReadOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat csv: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readTable(f, filepath.Base(path), path, opt)
}

func readTable(src io.Reader, name, path string, opt ReadOptions) (*Table, error) {
	delim := opt.Separator
	if delim == 0 {
		delim = ','
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("no columns to parse from file")}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for _, h := range header {
		if !utf8.ValidString(h) {
			return nil, &ParseError{Path: path, Err: errors.New("header is not valid UTF-8")}
		}
	}
	names := headerNames(header)
	ncol := len(names)

	raw := make([][]string, ncol)
	miss := make([]nulls, ncol)
	maxRows := opt.MaxRows
	if maxRows < 0 {
		maxRows = math.MaxInt
	}
	rows := 0
	for rows < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Path: path, Row: rows + 1, Err: err}
		}
		rows++
		if len(rec) > ncol {
			return nil, &ParseError{Path: path, Row: rows, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			if !utf8.ValidString(v) {
				return nil, &ParseError{Path: path, Row: rows, Err: fmt.Errorf("field %d is not valid UTF-8", j+1)}
			}
			m := isMissing(v)
			if m {
				v = ""
			}
			raw[j] = append(raw[j], v)
			miss[j] = append(miss[j], m)
		}
	}

	cols := make([]Column, ncol)
	for j := range cols {
		if miss[j] == nil {
			miss[j] = nulls{}
			raw[j] = []string{}
		}
		cols[j] = inferColumn(names[j], raw[j], miss[j])
	}
	return NewTable(name, cols...)
}

// headerNames fills blank names and de-duplicates repeats as name.1, name.2, ...
func headerNames(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]int{}
	used := map[string]struct{}{}
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		base := h
		for {
			if _, dup := used[h]; !dup {
				break
			}
			seen[base]++
			h = fmt.Sprintf("%s.%d", base, seen[base])
		}
		used[h] = struct{}{}
		out[i] = h
	}
	return out
}

// inferColumn picks the narrowest kind that accepts every non-missing value.
func inferColumn(name string, raw []string, miss nulls) Column {
	if len(raw) == 0 {
		return &TextColumn{name: name, vals: raw, nulls: miss}
	}
	if miss.Missing() == len(raw) {
		return &FloatColumn{name: name, vals: make([]float64, len(raw)), nulls: miss}
	}
	if vals, ok := parseAll(raw, miss, func(s string) (int64, bool) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}); ok {
		return &IntColumn{name: name, vals: vals, nulls: miss}
	}
	if vals, ok := parseAll(raw, miss, parseFloat); ok {
		return &FloatColumn{name: name, vals: vals, nulls: miss}
	}
	if vals, ok := parseAll(raw, miss, parseBool); ok {
		return &BoolColumn{name: name, vals: vals, nulls: miss}
	}
	if vals, ok := parseAll(raw, miss, parseTimeMaybe); ok {
		return &DatetimeColumn{name: name, vals: vals, nulls: miss}
	}
	return &TextColumn{name: name, vals: raw, nulls: miss}
}

func parseAll[T any](raw []string, miss nulls, parse func(string) (T, bool)) ([]T, bool) {
	out := make([]T, len(raw))
	for i, s := range raw {
		if miss[i] {
			continue
		}
		v, ok := parse(strings.TrimSpace(s))
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
