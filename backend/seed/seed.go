// Package seed fills an empty database with demo courses, lessons and quizzes.
package seed

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"signlearn/backend/models"
)

type Result struct {
	Seeded  bool `json:"seeded"`
	Courses int  `json:"courses"`
	Lessons int  `json:"lessons"`
	Quizzes int  `json:"quizzes"`
}

type Status struct {
	Courses       int64 `json:"courses"`
	Lessons       int64 `json:"lessons"`
	QuizQuestions int64 `json:"quiz_questions"`
}

// Populate inserts the demo content in one transaction. When any course
// already exists nothing is changed and Seeded is false.
func Populate(ctx context.Context, db *gorm.DB) (*Result, error) {
	res := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Course{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := clearContent(tx); err != nil {
			return err
		}

		ids := make([]uint, len(courses))
		for i, cd := range courses {
			course := models.Course{Title: cd.title, Level: cd.level, Description: cd.description, Category: cd.category}
			if err := tx.Create(&course).Error; err != nil {
				return fmt.Errorf("create course %q: %w", cd.title, err)
			}
			ids[i] = course.ID
		}

		for _, ld := range lessons {
			lesson := models.NewLesson(ids[ld.course], ld.title, ld.description, ld.videoURL, ld.steps)
			if err := tx.Create(&lesson).Error; err != nil {
				return fmt.Errorf("create lesson %q: %w", ld.title, err)
			}
		}

		keys := make([]int, 0, len(quizzes))
		for k := range quizzes {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			for _, qd := range quizzes[k] {
				q, err := models.NewQuizQuestion(ids[k], qd.question, qd.options, qd.correct)
				if err != nil {
					return err
				}
				if err := tx.Create(&q).Error; err != nil {
					return fmt.Errorf("create question: %w", err)
				}
			}
		}

		res.Seeded = true
		res.Courses = len(courses)
		res.Lessons = len(lessons)
		res.Quizzes = len(quizzes)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

// clearContent empties every content table, children first.
func clearContent(tx *gorm.DB) error {
	for _, m := range []interface{}{
		&models.QuizOption{},
		&models.QuizQuestion{},
		&models.UserLesson{},
		&models.LessonStep{},
		&models.Lesson{},
		&models.Course{},
	} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("clear content: %w", err)
		}
	}
	return nil
}

// CurrentStatus counts the seeded content.
func CurrentStatus(ctx context.Context, db *gorm.DB) (*Status, error) {
	db = db.WithContext(ctx)
	st := &Status{}
	if err := db.Model(&models.Course{}).Count(&st.Courses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Lesson{}).Count(&st.Lessons).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.QuizQuestion{}).Count(&st.QuizQuestions).Error; err != nil {
		return nil, err
	}
	return st, nil
}
