package seed

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"blog-api/internal/domains/post/model"
)

const exportSheet = "Blog posts"

var exportHeaders = []string{
	"ID",
	"Title",
	"Content",
	"Author First Name",
	"Author Last Name",
	"Publish Date",
}

// BuildWorkbook renders posts into a single-sheet workbook whose header
// the importer understands, so an export can be re-imported as is.
func BuildWorkbook(posts []*model.BlogPost) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	// Data rows start at row 2
	for i, p := range posts {
		rowNum := i + 2
		values := []any{
			p.ID,
			p.Title,
			p.Content,
			p.Author.FirstName,
			p.Author.LastName,
			formatDate(p.PublishDate),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

// WriteXLSX streams the workbook for posts to w
func WriteXLSX(w io.Writer, posts []*model.BlogPost) error {
	f, err := BuildWorkbook(posts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for posts to path
func SaveXLSX(path string, posts []*model.BlogPost) error {
	f, err := BuildWorkbook(posts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
