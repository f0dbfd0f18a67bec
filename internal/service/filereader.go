package service

import (
	"bufio"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/antonkor/logboard/internal/domain"
)

// Line formats the reader understands:
//
//	[<timestamp>] <channel>.<level>: <message>
//	<YYYY-MM-DD HH:MM:SS> [<LEVEL>] <message>
var (
	primaryLinePattern   = regexp.MustCompile(`^\[([^\]]+)\] (\w+)\.(\w+): (.+)$`)
	secondaryLinePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[(\w+)\] (.+)$`)
	trailingJSONPattern  = regexp.MustCompile(`\{[^}]+\}$`)
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FileReaderService is the degrade-gracefully ingestion fallback: it
// synthesizes ephemeral records from flat log files. A malformed line
// or unreadable file is skipped, never fatal.
type FileReaderService struct {
	dirs     []string
	demoMode bool
	now      func() time.Time
}

func NewFileReaderService(dirs []string, demoMode bool) *FileReaderService {
	return &FileReaderService{
		dirs:     dirs,
		demoMode: demoMode,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *FileReaderService) ReadLogs(ctx context.Context, filter FileFilter) ([]domain.FileLogRecord, error) {
	records := []domain.FileLogRecord{}

	for _, file := range s.logFiles() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileRecords, err := s.parseFile(file)
		if err != nil {
			log.WithFields(log.Fields{
				"file":  file,
				"error": err,
			}).Warn("Skipping unreadable log file")
			continue
		}
		records = append(records, fileRecords...)
	}

	if len(records) == 0 && s.demoMode {
		log.Info("No parseable log files found, serving demo records")
		records = s.generateDemoLogs()
	}

	records = applyFileFilters(records, filter)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records, nil
}

func (s *FileReaderService) logFiles() []string {
	files := []string{}

	for _, dir := range s.dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		for _, dir := range s.dirs {
			for _, name := range []string{"dev.log", "prod.log"} {
				path := filepath.Join(dir, name)
				if _, err := os.Stat(path); err == nil {
					files = append(files, path)
				}
			}
		}
	}

	return files
}

func (s *FileReaderService) parseFile(path string) ([]domain.FileLogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := []domain.FileLogRecord{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if record, ok := s.parseLine(scanner.Text(), lineNumber, filepath.Base(path)); ok {
			records = append(records, record)
		}
	}

	return records, scanner.Err()
}

func (s *FileReaderService) parseLine(line string, lineNumber int, filename string) (domain.FileLogRecord, bool) {
	trimmed := strings.TrimSpace(line)

	if m := primaryLinePattern.FindStringSubmatch(trimmed); m != nil {
		message := strings.TrimSpace(m[4])
		return domain.FileLogRecord{
			ID:         lineID(line, lineNumber),
			Timestamp:  s.parseTimestamp(m[1]),
			Level:      domain.NormalizeLevel(m[3]),
			Channel:    m[2],
			Message:    message,
			Context:    trailingJSONPattern.FindString(message),
			File:       filename,
			LineNumber: lineNumber,
			Raw:        line,
		}, true
	}

	if m := secondaryLinePattern.FindStringSubmatch(trimmed); m != nil {
		return domain.FileLogRecord{
			ID:         lineID(line, lineNumber),
			Timestamp:  s.parseTimestamp(m[1]),
			Level:      domain.NormalizeLevel(m[2]),
			Channel:    domain.DefaultChannel,
			Message:    strings.TrimSpace(m[3]),
			File:       filename,
			LineNumber: lineNumber,
			Raw:        line,
		}, true
	}

	return domain.FileLogRecord{}, false
}

func (s *FileReaderService) parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return s.now()
}

// lineID is stable within a parse pass: the same line content at the
// same position always hashes to the same id.
func lineID(line string, lineNumber int) string {
	sum := md5.Sum([]byte(line + fmt.Sprint(lineNumber)))
	return hex.EncodeToString(sum[:])
}

func applyFileFilters(records []domain.FileLogRecord, filter FileFilter) []domain.FileLogRecord {
	if filter.Level == "" && filter.Search == "" && filter.DateFrom.IsZero() && filter.DateTo.IsZero() {
		return records
	}

	filtered := make([]domain.FileLogRecord, 0, len(records))
	for _, r := range records {
		if filter.Level != "" && domain.NormalizeLevel(filter.Level) != r.Level {
			continue
		}
		if filter.Search != "" {
			haystack := strings.ToLower(r.Message + " " + r.Context)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		if !filter.DateFrom.IsZero() && r.Timestamp.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && r.Timestamp.After(filter.DateTo) {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}
