package session

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/models"
	"signlearn/backend/utils"
)

const (
	keyUserID = "user_id"
	keyEmail  = "email"
	keyRole   = "role"

	localsIdentity = "identity"
)

// Identity is who the caller is, as stored in the session or carried by a
// bearer token.
type Identity struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}

// Manager issues, reads and destroys login sessions.
type Manager struct {
	store      *fibersession.Store
	cookieName string
	secret     string
}

// NewManager builds a session manager. A nil storage keeps sessions in
// process memory.
func NewManager(cfg *config.Config, storage fiber.Storage) *Manager {
	store := fibersession.New(fibersession.Config{
		Expiration:     cfg.SessionTTL,
		Storage:        storage,
		KeyLookup:      "cookie:" + cfg.SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SessionSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookiePath:     "/",
		KeyGenerator:   uuid.NewString,
	})
	return &Manager{store: store, cookieName: cfg.SessionCookieName, secret: cfg.JWTSecret}
}

// Start logs the caller in as id. The session id is rotated first so a
// pre-login cookie cannot be reused.
func (m *Manager) Start(c *fiber.Ctx, id Identity) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(keyUserID, id.UserID)
	sess.Set(keyEmail, id.Email)
	sess.Set(keyRole, id.Role)
	return sess.Save()
}

// Identity resolves the caller from a bearer token or the session cookie.
// It returns nil without error for anonymous callers.
func (m *Manager) Identity(c *fiber.Ctx) (*Identity, error) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		claims, err := utils.ParseJWTToken(header, m.secret)
		if err != nil {
			return nil, err
		}
		return &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
	}

	if c.Cookies(m.cookieName) == "" {
		return nil, nil
	}
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, err
	}
	userID, ok := sess.Get(keyUserID).(uint)
	if !ok || userID == 0 {
		return nil, nil
	}
	email, _ := sess.Get(keyEmail).(string)
	role, _ := sess.Get(keyRole).(string)
	return &Identity{UserID: userID, Email: email, Role: role}, nil
}

// Refresh rewrites the identity kept in an existing login session. Callers
// without a session cookie are left alone.
func (m *Manager) Refresh(c *fiber.Ctx, id Identity) error {
	if c.Cookies(m.cookieName) == "" {
		return nil
	}
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if current, ok := sess.Get(keyUserID).(uint); !ok || current != id.UserID {
		return nil
	}
	sess.Set(keyEmail, id.Email)
	sess.Set(keyRole, id.Role)
	return sess.Save()
}

// Verify reloads id from the users table so deleted accounts and role changes
// apply at once instead of when the token or session expires. It returns nil
// without error when the user no longer exists.
func Verify(ctx context.Context, db *gorm.DB, id *Identity) (*Identity, error) {
	var user models.User
	err := db.WithContext(ctx).Select("id", "email", "role").First(&user, id.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Destroy removes the server-side session and expires the cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SetCurrent stores the resolved identity on the request.
func SetCurrent(c *fiber.Ctx, id *Identity) {
	c.Locals(localsIdentity, id)
}

// Current returns the identity stored by the auth middleware.
func Current(c *fiber.Ctx) (*Identity, error) {
	id, ok := c.Locals(localsIdentity).(*Identity)
	if !ok || id == nil {
		return nil, ErrNotAuthenticated
	}
	return id, nil
}

var ErrNotAuthenticated = errors.New("not authenticated")
