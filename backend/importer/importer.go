// Package importer loads quiz questions for a course from spreadsheets.
//
// Each row holds the question text, the number of the correct option
// (1-based) and two or more option texts. A first row whose second column is
// not a number is treated as a header.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"signlearn/backend/models"
)

var ErrCourseNotFound = errors.New("course not found")

type Options struct {
	// SheetName selects the worksheet of an .xlsx file; empty means the first.
	SheetName string
}

type Result struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// ImportFile reads path (.xlsx or .csv) and inserts its questions into the
// course in a single transaction. Invalid rows are skipped and reported.
func ImportFile(ctx context.Context, db *gorm.DB, courseID uint, path string, opts Options) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVFile(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, opts.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return ImportRows(ctx, db, courseID, rows)
}

// ImportRows validates rows and inserts the valid ones.
func ImportRows(ctx context.Context, db *gorm.DB, courseID uint, rows [][]string) (*Result, error) {
	res := &Result{Errors: make([]string, 0)}
	questions := make([]models.QuizQuestion, 0, len(rows))

	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		res.Processed++
		q, err := parseRow(courseID, row)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		questions = append(questions, q)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id").First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		for i := range questions {
			if err := tx.Create(&questions[i]).Error; err != nil {
				return fmt.Errorf("insert question %q: %w", questions[i].Question, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Created = len(questions)
	return res, nil
}

func parseRow(courseID uint, row []string) (models.QuizQuestion, error) {
	if len(row) < 4 {
		return models.QuizQuestion{}, fmt.Errorf("expected question, answer number and at least two options")
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return models.QuizQuestion{}, fmt.Errorf("correct answer %q is not a number", row[1])
	}
	options := trimTrailingBlanks(row[2:])
	return models.NewQuizQuestion(courseID, row[0], options, n-1)
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV reads all records, allowing rows of different lengths.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[1]))
	return err != nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Spreadsheets pad short rows with empty cells.
func trimTrailingBlanks(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
