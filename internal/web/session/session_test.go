package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
)

func TestNewStorage(t *testing.T) {
	for _, name := range []string{"", config.SessionStorageMemory} {
		s, err := NewStorage(config.Session{Storage: name})
		require.NoError(t, err)
		assert.Nil(t, s, name)
	}

	_, err := NewStorage(config.Session{Storage: "redis"})
	require.ErrorIs(t, err, config.ErrUnknownSessionStorage)
	assert.Contains(t, err.Error(), `"redis"`)
}

func TestFlash(t *testing.T) {
	Init(nil, time.Minute)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		return SetFlash(c, FlashSuccess, "saved")
	})
	app.Get("/pop", func(c *fiber.Ctx) error {
		f := PopFlash(c)
		if f == nil {
			return c.SendString("none")
		}

		return c.SendString(f.Kind + ":" + f.Message)
	})

	get := func(target string, cookies []*http.Cookie) (*http.Response, string) {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		return resp, string(body)
	}

	resp, _ := get("/set", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	_, body := get("/pop", cookies)
	assert.Equal(t, "success:saved", body)

	// popped messages are gone
	_, body = get("/pop", cookies)
	assert.Equal(t, "none", body)
}

func TestFlash_NoStore(t *testing.T) {
	Store = nil
	t.Cleanup(func() { Init(nil, time.Minute) })

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Error(t, SetFlash(c, FlashError, "x"))
		assert.Nil(t, PopFlash(c))

		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
