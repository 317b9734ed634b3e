package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Column names accepted in CSV headers
const (
	ColumnID        = "id"
	ColumnSleep     = "sleep_hours"
	ColumnDeadlines = "deadlines_next_7_days"
	ColumnWork      = "work_hours"
	ColumnStress    = "stress_self_report"
	ColumnSentiment = "sentiment_score"
)

// ReadFile loads records from a .csv file, or from a JSON array or JSON Lines file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch input %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}

// ReadCSV parses records from CSV with a header row. Empty cells are treated as not reported.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("batch CSV is empty")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case ColumnID, ColumnSleep, ColumnDeadlines, ColumnWork, ColumnStress, ColumnSentiment:
			header[i] = name
		default:
			return nil, fmt.Errorf("unknown CSV column %q", name)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		record, err := parseRow(header, row)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(header, row []string) (Record, error) {
	var record Record
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		var err error
		switch header[i] {
		case ColumnID:
			record.ID = cell
		case ColumnSleep:
			record.SleepHours, err = parseFloat(cell)
		case ColumnWork:
			record.WorkHours, err = parseFloat(cell)
		case ColumnSentiment:
			record.SentimentScore, err = parseFloat(cell)
		case ColumnDeadlines:
			record.DeadlinesNext7Days, err = parseInt(cell)
		case ColumnStress:
			record.StressSelfReport, err = parseInt(cell)
		}
		if err != nil {
			return Record{}, fmt.Errorf("invalid %s %q", header[i], cell)
		}
	}
	return record, nil
}

func parseFloat(s string) (*float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return types.Float(v), nil
}

func parseInt(s string) (*int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return types.Int(v), nil
}

// ReadJSON parses records from a JSON array or from one JSON object per line.
func ReadJSON(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := firstNonSpace(br)
	if err != nil {
		return nil, errors.New("batch JSON is empty")
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse batch JSON array: %w", err)
		}
		return records, nil
	}

	var records []Record
	for {
		var record Record
		err := dec.Decode(&record)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse batch JSON record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// firstNonSpace peeks the first non-whitespace byte without consuming it.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
