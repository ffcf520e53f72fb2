package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/internal/schema"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// NewWorkoutsCommand creates the workouts command group.
func NewWorkoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Aliases: []string{"workout", "w"},
		Short:   "Manage workouts",
		Long:    "List, count, inspect and create Hevy workouts",
	}

	cmd.AddCommand(newWorkoutsListCommand())
	cmd.AddCommand(newWorkoutsCountCommand())
	cmd.AddCommand(newWorkoutsGetCommand())
	cmd.AddCommand(newWorkoutsCreateCommand())

	return cmd
}

func newWorkoutsListCommand() *cobra.Command {
	var (
		page     int
		pageSize int
		pages    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workouts",
		Long:  "List workouts, newest first. --pages fetches consecutive pages concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			result, err := fetchWorkoutPages(cmd.Context(), client.Workouts(), page, pageSize, pages)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), result, func(out io.Writer) error {
				err := renderWorkoutsTable(out, result.Records("workouts"))
				if err != nil {
					return err
				}

				if pageCount, ok := result.Int("page_count"); ok {
					_, _ = fmt.Fprintf(out, "Page %d of %d\n", page, pageCount)
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", constants.MinPage, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize,
		"workouts per page, at most "+strconv.Itoa(constants.MaxPageSize))
	cmd.Flags().IntVar(&pages, "pages", 1,
		"number of consecutive pages to fetch, at most "+strconv.Itoa(constants.MaxPages))

	return cmd
}

// fetchWorkoutPages lists pages [first, first+pages) concurrently and merges
// their workouts in page order. A single page is returned as the API sent it.
func fetchWorkoutPages(ctx context.Context, workouts hevy.WorkoutsClient, first, pageSize, pages int) (hevy.Record, error) {
	if pages > constants.MaxPages {
		return nil, fmt.Errorf("%w: %d, at most %d", constants.ErrTooManyPages, pages, constants.MaxPages)
	}

	if pages <= 1 || first < constants.MinPage {
		return workouts.List(ctx, first, pageSize)
	}

	results := make([]hevy.Record, pages)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(constants.MaxConcurrentPages)

	for index := range pages {
		group.Go(func() error {
			result, err := workouts.List(ctx, first+index, pageSize)
			if err != nil {
				return err
			}

			results[index] = result

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	merged := make([]any, 0, pages*pageSize)
	for _, result := range results {
		for _, workout := range result.Records("workouts") {
			merged = append(merged, workout)
		}
	}

	combined := hevy.Record{"page": first, "workouts": merged}
	if pageCount, ok := results[0].Int("page_count"); ok {
		combined["page_count"] = pageCount
	}

	return combined, nil
}

func newWorkoutsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count workouts",
		Long:  "Display the total number of workouts on the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			count, err := client.Workouts().Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count workouts: %w", err)
			}

			result := map[string]int{constants.WorkoutCountField: count}

			return renderOutput(cmd.OutOrStdout(), result, func(out io.Writer) error {
				_, err := fmt.Fprintln(out, count)

				return err
			})
		},
	}
}

func newWorkoutsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKOUT_ID",
		Short: "Get workout details",
		Long:  "Display detailed information about a specific workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			workout, err := client.Workouts().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get workout: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), workout, func(out io.Writer) error {
				return renderWorkoutDetails(out, workout)
			})
		},
	}
}

func newWorkoutsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workout",
		Long: `Create a workout from a JSON or YAML file.

The file holds the workout itself (title, start_time, end_time, is_private,
exercises). Use "-" to read YAML or JSON from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return constants.ErrWorkoutFileRequired
			}

			format, err := inputFormat(file)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			workout, err := schema.New().DecodeWorkout(data, format)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			result, err := client.Workouts().Create(cmd.Context(), workout)
			if err != nil {
				return fmt.Errorf("failed to create workout: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), result, func(out io.Writer) error {
				created := result.Records(constants.WorkoutEnvelopeKey)
				if len(created) == 0 {
					_, err := fmt.Fprintln(out, "Workout created")

					return err
				}

				return renderWorkoutsTable(out, created)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "workout file (.json, .yaml or .yml), or - for standard input")

	return cmd
}

func inputFormat(path string) (schema.Format, error) {
	if path == "-" {
		return schema.FormatYAML, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return schema.FormatJSON, nil
	case ".yaml", ".yml":
		return schema.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFileFormat, path)
	}
}

func renderWorkoutsTable(out io.Writer, workouts []hevy.Record) error {
	if len(workouts) == 0 {
		_, err := fmt.Fprintln(out, "No workouts found")

		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Title", "Start", "End", "Exercises")

	for _, workout := range workouts {
		_ = table.Append([]string{
			stringValue(workout, "id"),
			stringValue(workout, "title"),
			stringValue(workout, "start_time"),
			stringValue(workout, "end_time"),
			strconv.Itoa(len(workout.Records("exercises"))),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderWorkoutDetails(out io.Writer, workout hevy.Record) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, key := range []string{"id", "title", "description", "start_time", "end_time", "created_at", "updated_at"} {
		_ = table.Append([]string{key, stringValue(workout, key)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	exercises := workout.Records("exercises")
	if len(exercises) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out, "\nExercises:")

	exerciseTable := tablewriter.NewWriter(out)
	exerciseTable.Header("#", "Exercise", "Template", "Sets")

	for index, exercise := range exercises {
		_ = exerciseTable.Append([]string{
			strconv.Itoa(index + 1),
			stringValue(exercise, "title"),
			stringValue(exercise, "exercise_template_id"),
			strconv.Itoa(len(exercise.Records("sets"))),
		})
	}

	err = exerciseTable.Render()
	if err != nil {
		return fmt.Errorf("failed to render exercises table: %w", err)
	}

	return nil
}
