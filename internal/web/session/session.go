// Package session keeps the front-end's session store and the flash messages living in it.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
)

const (
	keyFlashKind = "flash_kind"
	keyFlashMsg  = "flash_msg"

	// CookieName is the name of the session cookie.
	CookieName = "session"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// NewStorage returns the storage backend for cfg. A nil storage means the in-memory default.
func NewStorage(cfg config.Session) (fiber.Storage, error) {
	switch cfg.Storage {
	case config.SessionStorageMemory, "":
		return nil, nil //nolint:nilnil
	case config.SessionStorageMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         cfg.Table,
		}), nil
	case config.SessionStoragePostgres:
		return postgres.New(postgres.Config{
			ConnectionURI: cfg.ConnectionURI,
			Table:         cfg.Table,
		}), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownSessionStorage, "storage %q", cfg.Storage)
	}
}

// Init initializes the session store with the provided storage backend, nil for memory.
func Init(storage fiber.Storage, expiry time.Duration) {
	Store = session.New(session.Config{
		Storage:        storage,
		Expiration:     expiry,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SetFlash stores a message for the next page.
func SetFlash(c *fiber.Ctx, kind, message string) error {
	if Store == nil {
		return errors.New("session store not initialized")
	}

	sess, err := Store.Get(c)
	if err != nil {
		return errors.Wrap(err, "load session")
	}

	sess.Set(keyFlashKind, kind)
	sess.Set(keyFlashMsg, message)

	return errors.Wrap(sess.Save(), "save session")
}

// PopFlash returns and removes the pending message, nil if there is none.
func PopFlash(c *fiber.Ctx) *Flash {
	if Store == nil {
		return nil
	}

	sess, err := Store.Get(c)
	if err != nil {
		log.Warn().Err(err).Msg("can't load session")

		return nil
	}

	msg, _ := sess.Get(keyFlashMsg).(string)
	if msg == "" {
		return nil
	}

	kind, _ := sess.Get(keyFlashKind).(string)

	sess.Delete(keyFlashKind)
	sess.Delete(keyFlashMsg)

	if err := sess.Save(); err != nil {
		log.Warn().Err(err).Msg("can't save session")
	}

	return &Flash{Kind: kind, Message: msg}
}
