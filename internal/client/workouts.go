package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/internal/http"
	"github.com/fivetwenty-io/hevy-client/internal/schema"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
)

// WorkoutsClient implements hevy.WorkoutsClient.
type WorkoutsClient struct {
	httpClient *http.Client
	validator  *schema.Validator
}

// NewWorkoutsClient creates a new workouts client.
func NewWorkoutsClient(httpClient *http.Client, validator *schema.Validator) *WorkoutsClient {
	return &WorkoutsClient{
		httpClient: httpClient,
		validator:  validator,
	}
}

// List implements hevy.WorkoutsClient.List.
func (c *WorkoutsClient) List(ctx context.Context, page, pageSize int) (hevy.Record, error) {
	if page < constants.MinPage {
		return nil, hevy.NewRequestError(hevy.ErrInvalidPage)
	}

	if pageSize < constants.MinPageSize || pageSize > constants.MaxPageSize {
		return nil, hevy.NewRequestError(hevy.ErrInvalidPageSize)
	}

	query := url.Values{}
	query.Set(constants.PageParam, strconv.Itoa(page))
	query.Set(constants.PageSizeParam, strconv.Itoa(pageSize))

	return c.httpClient.Execute(ctx, &http.Request{
		Method: "GET",
		Path:   constants.WorkoutsPath,
		Query:  query,
	})
}

// Count implements hevy.WorkoutsClient.Count.
func (c *WorkoutsClient) Count(ctx context.Context) (int, error) {
	resp, err := c.httpClient.Get(ctx, constants.WorkoutsCountPath, nil)
	if err != nil {
		return 0, err
	}

	record, err := http.DecodeRecord(resp)
	if err != nil {
		return 0, err
	}

	count, ok := record.Int(constants.WorkoutCountField)
	if !ok {
		return 0, &hevy.RequestError{
			StatusCode: resp.StatusCode,
			Message:    hevy.ErrMissingCount.Error(),
			Err:        hevy.ErrMissingCount,
		}
	}

	return count, nil
}

// Get implements hevy.WorkoutsClient.Get.
func (c *WorkoutsClient) Get(ctx context.Context, id string) (hevy.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, hevy.NewRequestError(hevy.ErrWorkoutIDRequired)
	}

	return c.httpClient.Execute(ctx, &http.Request{
		Method: "GET",
		Path:   constants.WorkoutsPath + "/" + url.PathEscape(id),
	})
}

// Create implements hevy.WorkoutsClient.Create.
func (c *WorkoutsClient) Create(ctx context.Context, workout *hevy.WorkoutCreate) (hevy.Record, error) {
	validated, err := c.validator.ValidateWorkout(workout)
	if err != nil {
		return nil, err
	}

	return c.httpClient.Execute(ctx, &http.Request{
		Method: "POST",
		Path:   constants.WorkoutsPath,
		Body:   map[string]interface{}{constants.WorkoutEnvelopeKey: validated},
	})
}
