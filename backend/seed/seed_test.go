package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signlearn/backend/database"
	"signlearn/backend/models"
)

func TestPopulateIsIdempotent(t *testing.T) {
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	ctx := context.Background()

	res, err := Populate(ctx, db)
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.Equal(t, 5, res.Courses)

	first, err := CurrentStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.Courses)
	assert.Equal(t, int64(5), first.Lessons)
	assert.Equal(t, int64(9), first.QuizQuestions)

	res, err = Populate(ctx, db)
	require.NoError(t, err)
	assert.False(t, res.Seeded)

	second, err := CurrentStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var steps, options int64
	require.NoError(t, db.Model(&models.LessonStep{}).Count(&steps).Error)
	require.NoError(t, db.Model(&models.QuizOption{}).Count(&options).Error)
	assert.Equal(t, int64(25), steps)
	assert.Equal(t, int64(27), options)
}

func TestSeededAnswersAreFirstOption(t *testing.T) {
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	_, err = Populate(context.Background(), db)
	require.NoError(t, err)

	var qs []models.QuizQuestion
	require.NoError(t, db.Find(&qs).Error)
	for _, q := range qs {
		assert.Equal(t, 1, q.CorrectAnswer)
	}
}
