package importer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"signlearn/backend/database"
	"signlearn/backend/models"
)

func newCourse(t *testing.T) (*gorm.DB, uint) {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	course := models.Course{Title: "Basics", Category: "daily"}
	require.NoError(t, db.Create(&course).Error)
	return db, course.ID
}

const sample = `question,correct,option 1,option 2,option 3
How do you sign hello?,2,Fist,Wave,Nod
,,,
Broken row,7,A,B
Too few,1,Only
What is water?,1,W near mouth,Knock fists,
`

func TestImportRowsFromCSV(t *testing.T) {
	db, courseID := newCourse(t)
	rows, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	res, err := ImportRows(context.Background(), db, courseID, rows)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "Row 4")

	var qs []models.QuizQuestion
	require.NoError(t, db.Preload("Options", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("option_order")
	}).Order("id").Find(&qs).Error)
	require.Len(t, qs, 2)
	assert.Equal(t, 2, qs[0].CorrectAnswer)
	assert.Len(t, qs[0].Options, 3)
	assert.Len(t, qs[1].Options, 2)
	assert.Equal(t, 0, qs[1].View().CorrectAnswer)
}

func TestImportFileXLSX(t *testing.T) {
	db, courseID := newCourse(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"How do you sign yes?", 1, "Nod with fist", "Shake head"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"How do you sign no?", 2, "Nod with fist", "Shake head"}))
	path := filepath.Join(t.TempDir(), "quiz.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := ImportFile(context.Background(), db, courseID, path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Zero(t, res.Skipped)
}

func TestImportRowsUnknownCourse(t *testing.T) {
	db, _ := newCourse(t)
	_, err := ImportRows(context.Background(), db, 999, [][]string{{"q", "1", "a", "b"}})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestImportFileRejectsUnknownExtension(t *testing.T) {
	db, courseID := newCourse(t)
	_, err := ImportFile(context.Background(), db, courseID, "quiz.txt", Options{})
	assert.Error(t, err)
}
