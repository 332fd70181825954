// Package seed imports partners and schedule entries from CSV files.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/repository"
)

var scheduleColumns = []string{"class_name", "day", "time", "activity", "professor"}

// readRecords reads a CSV with a header row into maps keyed by lower-cased header.
func readRecords(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, header := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	}
	for _, col := range required {
		found := false
		for _, header := range headers {
			if header == col {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = strings.TrimSpace(value)
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// ReadPartners returns the distinct non-blank names of the "name" column.
func ReadPartners(r io.Reader) ([]string, error) {
	records, err := readRecords(r, "name")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, record := range records {
		name := record["name"]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// ReadScheduleEntries parses class_name, day, time, activity, professor rows. Rows with a
// missing key field are rejected; rows with neither activity nor professor are skipped.
func ReadScheduleEntries(r io.Reader) ([]domain.ScheduleEntry, error) {
	records, err := readRecords(r, scheduleColumns[:3]...)
	if err != nil {
		return nil, err
	}

	var entries []domain.ScheduleEntry
	for i, record := range records {
		entry := domain.ScheduleEntry{
			ClassName: record["class_name"],
			Day:       record["day"],
			Time:      record["time"],
			Activity:  record["activity"],
			Professor: record["professor"],
		}
		if entry.ClassName == "" || entry.Day == "" || entry.Time == "" {
			// +2: header row and 1-based lines
			return nil, fmt.Errorf("line %d: class_name, day and time are required", i+2)
		}
		if entry.IsBlank() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Partners inserts names, skipping those already present. It returns how many were added.
func Partners(ctx context.Context, store repository.Store, names []string) (int, error) {
	count := 0
	for _, name := range names {
		if _, err := store.CreatePartner(ctx, name); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				slog.Warn("partner already exists", slog.String("name", name))
				continue
			}
			return count, fmt.Errorf("insert partner %q: %w", name, err)
		}
		count++
	}
	return count, nil
}

// Schedule upserts entries and returns how many were written.
func Schedule(ctx context.Context, store repository.Store, entries []domain.ScheduleEntry) (int, error) {
	count := 0
	for i := range entries {
		if err := store.UpsertScheduleEntry(ctx, &entries[i]); err != nil {
			return count, fmt.Errorf("upsert %s: %w", entries[i].Key(), err)
		}
		count++
	}
	return count, nil
}
