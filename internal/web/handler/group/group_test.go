package group

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler/handlertest"
)

func setupApp(t *testing.T, api *handlertest.API) (*fiber.App, *handlertest.Views) {
	t.Helper()

	views := &handlertest.Views{}
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: handler.ErrorHandler,
	})

	(&Service{}).Init(app, &config.Config{}, api)

	return app, views
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"all", Path, []string{"Admin", "Level1"}},
		{"by name", Path + "?search=level", []string{"Level1"}},
		{"by permission", Path + "?search=USERS.", []string{"Admin"}},
		{"no match", Path + "?search=nothing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, views := setupApp(t, handlertest.NewAPI())

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			name, _, data := views.Last()
			assert.Equal(t, TemplateList, name)

			rows, ok := data["Groups"].([]Row)
			require.True(t, ok)

			got := make([]string, 0, len(rows))
			for _, r := range rows {
				got = append(got, r.Name)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList_MemberCounts(t *testing.T) {
	api := handlertest.NewAPI()
	api.PerGroup = []dto.UsersPerGroup{{GroupID: 2, GroupName: "Level1", UserCount: 7}}

	app, views := setupApp(t, api)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	require.NoError(t, err)

	_, _, data := views.Last()
	rows, ok := data["Groups"].([]Row)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[0].Members)
	assert.Equal(t, int64(7), rows[1].Members)
}

func TestList_APIDown(t *testing.T) {
	api := handlertest.NewAPI()
	api.Err = errors.New("connection refused")

	app, _ := setupApp(t, api)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
