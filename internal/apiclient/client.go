// Package apiclient is the HTTP client the front-end uses to talk to the REST API.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/logger/adapter/stdlogger"
)

const (
	pathUsers         = "/api/users"
	pathUser          = pathUsers + "/{id}"
	pathCount         = pathUsers + "/count"
	pathCountPerGroup = pathUsers + "/count-per-group"
	pathGroups        = "/api/groups"
)

// APIError is a non-2xx answer of the API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []dto.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api answered %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}

// Client calls the REST API. It never retries.
type Client struct {
	rc *resty.Client
}

// New returns a client for the API at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New()
	rc.SetBaseURL(baseURL)
	rc.SetTimeout(timeout)
	rc.SetRetryCount(0)
	rc.SetLogger(stdlogger.New("apiclient"))
	rc.SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

func (c *Client) request(ctx context.Context, result any) *resty.Request {
	req := c.rc.R().
		SetContext(ctx).
		SetError(&dto.ErrorResponse{})

	if result != nil {
		req.SetResult(result)
	}

	return req
}

// check turns transport failures and non-2xx answers into errors.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return pkgerrors.Wrap(err, "api request failed")
	}

	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}

	if body, ok := resp.Error().(*dto.ErrorResponse); ok && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}

	return apiErr
}

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var users []dto.UserResponse
	if err := check(c.request(ctx, &users).Get(pathUsers)); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser returns the user or nil if the API does not know it.
func (c *Client) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	var u dto.UserResponse

	err := check(c.request(ctx, &u).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get(pathUser))
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil //nolint:nilnil
		}

		return nil, err
	}

	return &u, nil
}

// CreateUser creates a user and returns it as stored.
func (c *Client) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	var u dto.UserResponse
	if err := check(c.request(ctx, &u).SetBody(in).Post(pathUsers)); err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateUser applies a partial update. An unknown user yields an APIError with status 404.
func (c *Client) UpdateUser(ctx context.Context, id int64, in dto.UpdateUserRequest) error {
	return check(c.request(ctx, nil).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(in).
		Put(pathUser))
}

// DeleteUser deletes a user and reports false if it did not exist.
func (c *Client) DeleteUser(ctx context.Context, id int64) (bool, error) {
	err := check(c.request(ctx, nil).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(pathUser))
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Count returns the number of users.
func (c *Client) Count(ctx context.Context) (int64, error) {
	var out dto.Count
	if err := check(c.request(ctx, &out).Get(pathCount)); err != nil {
		return 0, err
	}

	return out.Count, nil
}

// CountPerGroup returns the member count of every group.
func (c *Client) CountPerGroup(ctx context.Context) ([]dto.UsersPerGroup, error) {
	var rows []dto.UsersPerGroup
	if err := check(c.request(ctx, &rows).Get(pathCountPerGroup)); err != nil {
		return nil, err
	}

	return rows, nil
}

// ListGroups returns every group.
func (c *Client) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	var groups []dto.GroupResponse
	if err := check(c.request(ctx, &groups).Get(pathGroups)); err != nil {
		return nil, err
	}

	return groups, nil
}
