package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"blog-api/internal/domains/post/model"
)

// Column names accepted by the importer, after normalization
const (
	colTitle           = "title"
	colContent         = "content"
	colAuthorFirstName = "author_first_name"
	colAuthorLastName  = "author_last_name"
	colPublishDate     = "publish_date"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")
	ErrNoDataRows        = errors.New("file has no data rows")
)

// RowError reports which data row failed. Row numbers count the header as row 1.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadFile reads posts from a .csv or .xlsx file, chosen by extension
func LoadFile(path string) ([]*model.BlogPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(f)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func ParseCSV(r io.Reader) ([]*model.BlogPost, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return parseRecords(records)
}

// ParseXLSX reads the first sheet of the workbook
func ParseXLSX(r io.Reader) ([]*model.BlogPost, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoDataRows
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return parseRecords(rows)
}

// parseRecords turns a header row plus data rows into posts. Every row is
// checked with the same rules as the create endpoint; the first bad row
// aborts the whole import.
func parseRecords(records [][]string) ([]*model.BlogPost, error) {
	if len(records) < 2 {
		return nil, ErrNoDataRows
	}

	colMap := buildColumnIndexMap(records[0])
	for _, required := range []string{colTitle, colContent, colAuthorFirstName, colAuthorLastName} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	posts := make([]*model.BlogPost, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2
		if isBlankRecord(record) {
			continue
		}

		post, err := parseRow(record, colMap)
		if err != nil {
			return nil, &RowError{Row: rowNum, Err: err}
		}
		posts = append(posts, post)
	}

	if len(posts) == 0 {
		return nil, ErrNoDataRows
	}
	return posts, nil
}

// buildColumnIndexMap maps "Author First Name" and "author_first_name" alike
func buildColumnIndexMap(header []string) map[string]int {
	colMap := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		colMap[key] = i
	}
	return colMap
}

func parseRow(record []string, colMap map[string]int) (*model.BlogPost, error) {
	getCol := func(name string) string {
		if idx, ok := colMap[name]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	req := model.CreatePostRequest{
		Title:   getCol(colTitle),
		Content: getCol(colContent),
		Author: model.AuthorRequest{
			FirstName: getCol(colAuthorFirstName),
			LastName:  getCol(colAuthorLastName),
		},
	}

	if val := getCol(colPublishDate); val != "" {
		published, err := time.Parse(time.RFC3339, val)
		if err != nil {
			return nil, fmt.Errorf("invalid publish_date %q: %w", val, err)
		}
		req.PublishDate = &published
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req.ToEntity(), nil
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
