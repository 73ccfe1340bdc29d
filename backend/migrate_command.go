package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"signlearn/backend/database"
	"signlearn/backend/importer"
	"signlearn/backend/seed"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := database.Migrate(rt.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty database with demo content",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := database.Migrate(rt.db); err != nil {
				return err
			}
			res, err := seed.Populate(cmd.Context(), rt.db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !res.Seeded {
				fmt.Fprintln(out, "Database already has courses. Skipping seed.")
				return nil
			}
			fmt.Fprintf(out, "Seeded %d courses, %d lessons, %d quizzes\n", res.Courses, res.Lessons, res.Quizzes)
			return nil
		},
	}
}

func newImportQuizCommand() *cobra.Command {
	var (
		courseFlag string
		sheetFlag  string
	)

	cmd := &cobra.Command{
		Use:   "import-quiz --course <id> <file>",
		Short: "Import quiz questions for a course from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseUint(courseFlag, 10, 64)
			if err != nil || courseID == 0 {
				return fmt.Errorf("invalid --course %q", courseFlag)
			}

			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := database.Migrate(rt.db); err != nil {
				return err
			}
			res, err := importer.ImportFile(cmd.Context(), rt.db, uint(courseID), args[0], importer.Options{SheetName: sheetFlag})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed: %d\n", res.Processed)
			fmt.Fprintf(out, "Created:   %d\n", res.Created)
			fmt.Fprintf(out, "Skipped:   %d\n", res.Skipped)
			for _, e := range res.Errors {
				fmt.Fprintln(out, "  "+e)
			}
			rt.log.Info("quiz import finished", "course_id", courseID, "created", res.Created, "skipped", res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&courseFlag, "course", "", "Course ID to attach the questions to")
	cmd.Flags().StringVar(&sheetFlag, "sheet", "", "Worksheet name (defaults to the first sheet)")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}
