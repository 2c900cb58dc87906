package user

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserAdmin/GoUserAdmin/internal/apiclient"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler/handlertest"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

func setupApp(t *testing.T) (*fiber.App, *handlertest.Views, *handlertest.API) {
	t.Helper()

	session.Init(nil, time.Minute)

	views := &handlertest.Views{}
	api := handlertest.NewAPI()

	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: handler.ErrorHandler,
	})

	(&Service{}).Init(app, &config.Config{}, api)

	return app, views, api
}

func do(t *testing.T, app *fiber.App, method, target string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp
}

func TestList(t *testing.T) {
	app, views, api := setupApp(t)

	resp := do(t, app, http.MethodGet, Path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	name, layout, data := views.Last()
	assert.Equal(t, TemplateList, name)
	assert.Equal(t, handler.BaseLayout, layout)
	assert.Equal(t, api.Users, data["Users"])
	assert.Nil(t, data["Flash"])
	assert.NotNil(t, data["Navigation"])
}

func TestList_APIDown(t *testing.T) {
	app, views, api := setupApp(t)
	api.Err = errors.New("connection refused")

	resp := do(t, app, http.MethodGet, Path, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	name, _, data := views.Last()
	assert.Equal(t, handler.TemplateError, name)
	assert.Equal(t, handler.MsgAPIUnavailable, data["Message"])
}

func TestNew(t *testing.T) {
	app, views, api := setupApp(t)

	resp := do(t, app, http.MethodGet, Path+"/new", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	name, _, data := views.Last()
	assert.Equal(t, TemplateForm, name)

	view, ok := data["View"].(*FormView)
	require.True(t, ok)
	assert.Equal(t, Path, view.Action)
	assert.Zero(t, view.UserID)
	assert.True(t, view.Form.IsActive)
	assert.Equal(t, api.Groups, view.Groups)
	assert.NotNil(t, view.FieldErrors)
}

func TestCreate(t *testing.T) {
	app, views, api := setupApp(t)

	form := url.Values{
		"email":       {"grace@example.com"},
		"displayName": {"Grace"},
		"isActive":    {"true"},
		"groupIds":    {"1", "2"},
	}

	resp := do(t, app, http.MethodPost, Path, form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get(fiber.HeaderLocation))

	require.Len(t, api.Created, 1)
	got := api.Created[0]
	assert.Equal(t, "grace@example.com", got.Email)
	assert.Equal(t, "Grace", got.DisplayName)
	require.NotNil(t, got.IsActive)
	assert.True(t, *got.IsActive)
	assert.Equal(t, []int64{1, 2}, got.GroupIDs)

	// the flash message shows up once on the next page
	resp = do(t, app, http.MethodGet, Path, nil, resp.Cookies()...)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, _, data := views.Last()
	assert.Equal(t, &session.Flash{Kind: session.FlashSuccess, Message: "User grace@example.com created."}, data["Flash"])
}

func TestCreate_Inactive(t *testing.T) {
	app, _, api := setupApp(t)

	resp := do(t, app, http.MethodPost, Path, url.Values{
		"email":       {"grace@example.com"},
		"displayName": {"Grace"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	require.Len(t, api.Created, 1)
	require.NotNil(t, api.Created[0].IsActive)
	assert.False(t, *api.Created[0].IsActive)
	assert.Empty(t, api.Created[0].GroupIDs)
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantFields map[string]string
	}{
		{
			name:       "duplicate email",
			err:        &apiclient.APIError{StatusCode: http.StatusConflict, Message: "Email already exists."},
			wantStatus: http.StatusConflict,
			wantError:  "Email already exists.",
			wantFields: map[string]string{},
		},
		{
			name: "validation",
			err: &apiclient.APIError{
				StatusCode: http.StatusBadRequest,
				Message:    "Validation failed.",
				Fields:     []dto.FieldError{{Field: "email", Message: "email must be a valid email address"}},
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed.",
			wantFields: map[string]string{"email": "email must be a valid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, views, api := setupApp(t)
			api.CreateErr = tt.err

			resp := do(t, app, http.MethodPost, Path, url.Values{
				"email":       {"not-an-email"},
				"displayName": {"Grace"},
				"groupIds":    {"2"},
			})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			name, _, data := views.Last()
			require.Equal(t, TemplateForm, name)

			view, ok := data["View"].(*FormView)
			require.True(t, ok)
			assert.Equal(t, tt.wantError, view.Error)
			assert.Equal(t, tt.wantFields, view.FieldErrors)
			// the posted values are kept
			assert.Equal(t, "not-an-email", view.Form.Email)
			assert.Equal(t, []int64{2}, view.Form.GroupIDs)
		})
	}
}

func TestCreate_APIDown(t *testing.T) {
	app, views, api := setupApp(t)
	api.CreateErr = errors.New("connection refused")

	resp := do(t, app, http.MethodPost, Path, url.Values{
		"email":       {"grace@example.com"},
		"displayName": {"Grace"},
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	name, _, _ := views.Last()
	assert.Equal(t, handler.TemplateError, name)
}

func TestEdit(t *testing.T) {
	app, views, _ := setupApp(t)

	resp := do(t, app, http.MethodGet, EditPath(1), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	name, _, data := views.Last()
	assert.Equal(t, TemplateForm, name)

	view, ok := data["View"].(*FormView)
	require.True(t, ok)
	assert.Equal(t, int64(1), view.UserID)
	assert.Equal(t, Path+"/1", view.Action)
	assert.Equal(t, Form{
		Email:       "ada@example.com",
		DisplayName: "Ada",
		IsActive:    true,
		GroupIDs:    []int64{1},
	}, view.Form)
}

func TestEdit_NotFound(t *testing.T) {
	app, views, _ := setupApp(t)

	resp := do(t, app, http.MethodGet, EditPath(99), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get(fiber.HeaderLocation))

	do(t, app, http.MethodGet, Path, nil, resp.Cookies()...)

	_, _, data := views.Last()
	assert.Equal(t, &session.Flash{Kind: session.FlashError, Message: "User not found."}, data["Flash"])
}

func TestEdit_NonIntegerID(t *testing.T) {
	app, views, _ := setupApp(t)

	resp := do(t, app, http.MethodGet, Path+"/abc/edit", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	name, _, _ := views.Last()
	assert.Equal(t, handler.TemplateError, name)
}

func TestUpdate(t *testing.T) {
	app, _, api := setupApp(t)

	// unchecked boxes are not posted
	resp := do(t, app, http.MethodPost, Path+"/1", url.Values{
		"email":       {"ada@example.org"},
		"displayName": {"Ada L."},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get(fiber.HeaderLocation))

	got, ok := api.Updated[1]
	require.True(t, ok)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ada@example.org", *got.Email)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "Ada L.", *got.DisplayName)
	require.NotNil(t, got.IsActive)
	assert.False(t, *got.IsActive)
	require.NotNil(t, got.GroupIDs)
	assert.Empty(t, *got.GroupIDs)
}

func TestUpdate_Groups(t *testing.T) {
	app, _, api := setupApp(t)

	resp := do(t, app, http.MethodPost, Path+"/1", url.Values{
		"email":       {"ada@example.com"},
		"displayName": {"Ada"},
		"isActive":    {"true"},
		"groupIds":    {"2"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	got := api.Updated[1]
	require.NotNil(t, got.GroupIDs)
	assert.Equal(t, []int64{2}, *got.GroupIDs)
	assert.True(t, *got.IsActive)
}

func TestUpdate_NotFound(t *testing.T) {
	app, _, api := setupApp(t)

	resp := do(t, app, http.MethodPost, Path+"/99", url.Values{
		"email":       {"x@example.com"},
		"displayName": {"X"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, api.Updated)
}

func TestUpdate_Conflict(t *testing.T) {
	app, views, api := setupApp(t)
	api.UpdateErr = &apiclient.APIError{StatusCode: http.StatusConflict, Message: "Email already exists."}

	resp := do(t, app, http.MethodPost, Path+"/1", url.Values{
		"email":       {"taken@example.com"},
		"displayName": {"Ada"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	_, _, data := views.Last()
	view, ok := data["View"].(*FormView)
	require.True(t, ok)
	assert.Equal(t, "Email already exists.", view.Error)
	assert.Equal(t, int64(1), view.UserID)
	assert.Equal(t, "taken@example.com", view.Form.Email)
}

func TestConfirmDelete(t *testing.T) {
	app, views, api := setupApp(t)

	resp := do(t, app, http.MethodGet, Path+"/1/delete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	name, _, data := views.Last()
	assert.Equal(t, TemplateDelete, name)
	assert.Equal(t, &api.Users[0], data["User"])

	resp = do(t, app, http.MethodGet, Path+"/99/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	app, views, api := setupApp(t)

	resp := do(t, app, http.MethodPost, Path+"/1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []int64{1}, api.Deleted)
	assert.Empty(t, api.Users)

	do(t, app, http.MethodGet, Path, nil, resp.Cookies()...)

	_, _, data := views.Last()
	assert.Equal(t, &session.Flash{Kind: session.FlashSuccess, Message: "User deleted."}, data["Flash"])

	// a second delete finds nothing
	resp = do(t, app, http.MethodPost, Path+"/1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []int64{1}, api.Deleted)
}

func TestEditPath(t *testing.T) {
	assert.Equal(t, "/users/42/edit", EditPath(42))
}
