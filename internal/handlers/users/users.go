package users

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-users/internal/middleware"
	"go-users/internal/models"
	"go-users/internal/stores"
	"go-users/internal/token"
	"go-users/internal/user"
	"go-users/internal/validation"
)

const (
	MsgUserCreated        = "New user created!!!"
	MsgUserExists         = "User already exist"
	MsgInvalidRole        = "Invalid role."
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoggedIn           = "User logged in"
	MsgLoggedOut          = "User logged out"
	MsgUserNotFound       = "The user with the given ID was not found."
	MsgUserDoesNotExist   = "User does not exist"
	MsgInvalidBody        = "Invalid request body."
)

type UserHandler struct {
	Users     stores.UserStore
	Roles     stores.RoleStore
	Revoked   stores.RevokedTokenStore
	Hasher    user.PasswordHasher
	Tokens    token.TokenService
	Validator *validation.Validator
	TokenTTL  time.Duration
	Log       *slog.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(
	users stores.UserStore,
	roles stores.RoleStore,
	revoked stores.RevokedTokenStore,
	hasher user.PasswordHasher,
	tokens token.TokenService,
	validator *validation.Validator,
	tokenTTL time.Duration,
	log *slog.Logger,
) *UserHandler {
	return &UserHandler{
		Users:     users,
		Roles:     roles,
		Revoked:   revoked,
		Hasher:    hasher,
		Tokens:    tokens,
		Validator: validator,
		TokenTTL:  tokenTTL,
		Log:       log,
	}
}

// Signup creates an account. Only a confirmation text is returned.
func (h *UserHandler) Signup(c *gin.Context) {
	var req validation.SignupRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		c.String(http.StatusBadRequest, MsgUserExists)
		return
	} else if !errors.Is(err, stores.ErrNotFound) {
		h.fail(c, err)
		return
	}

	role, err := h.Roles.FindByTitle(ctx, req.Role)
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusBadRequest, MsgInvalidRole)
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}

	hashedPassword, err := h.Hasher.Hash([]byte(req.Password))
	if err != nil {
		h.fail(c, err)
		return
	}

	u := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		RoleID:    role.ID,
	}

	// The unique index still catches a signup that raced past the check above.
	if err := h.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, stores.ErrDuplicateEmail) {
			c.String(http.StatusBadRequest, MsgUserExists)
			return
		}
		h.fail(c, err)
		return
	}

	h.Log.InfoContext(ctx, "user created", "user_id", u.ID, "role", req.Role)
	c.String(http.StatusOK, MsgUserCreated)
}

// Login verifies credentials and returns an access token in the
// x-auth-token header. Unknown email, deleted account and wrong
// password all get the same answer.
func (h *UserHandler) Login(c *gin.Context) {
	var req validation.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	u, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusBadRequest, MsgInvalidCredentials)
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}
	if u.Deleted {
		c.String(http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	if err := h.Hasher.Compare([]byte(u.Password), []byte(req.Password)); err != nil {
		c.String(http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	tokenString, err := h.Tokens.GenerateAccessToken(u.ID, u.RoleTitle(), h.TokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.DebugContext(c.Request.Context(), "user logged in", "user_id", u.ID)
	c.Header(middleware.AuthHeader, tokenString)
	c.String(http.StatusOK, MsgLoggedIn)
}

// Logout revokes the presented token, if it is still valid, until it
// expires. Requests without a usable token are still answered with 200.
func (h *UserHandler) Logout(c *gin.Context) {
	raw := c.GetHeader(middleware.AuthHeader)
	c.Request.Header.Del(middleware.AuthHeader)

	if raw != "" {
		claims, err := h.Tokens.ParseAccessToken(raw)
		if err == nil {
			if err := h.Revoked.Revoke(c.Request.Context(), claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
				h.fail(c, err)
				return
			}
			h.Log.DebugContext(c.Request.Context(), "token revoked", "user_id", claims.UserID, "jti", claims.ID)
		}
	}

	c.String(http.StatusOK, MsgLoggedOut)
}

// Get lists every user by first name. Soft-deleted users are included.
func (h *UserHandler) Get(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, stores.ErrNotFound) || (err == nil && u.Deleted) {
		c.String(http.StatusNotFound, MsgUserNotFound)
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Put updates names and password. Empty or omitted fields keep their
// current value.
func (h *UserHandler) Put(c *gin.Context) {
	var req validation.UpdateRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, ok := h.activeUser(c, id)
	if !ok {
		return
	}

	password := existing.Password
	if req.Password != "" {
		hashed, err := h.Hasher.Hash([]byte(req.Password))
		if err != nil {
			h.fail(c, err)
			return
		}
		password = string(hashed)
	}

	updated, err := h.Users.UpdateUser(ctx, id, stores.UserUpdate{
		FirstName: coalesce(req.FirstName, existing.FirstName),
		LastName:  coalesce(req.LastName, existing.LastName),
		Password:  password,
	})
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusBadRequest, MsgUserDoesNotExist)
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete flags the user as deleted. The row is kept.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.activeUser(c, id); !ok {
		return
	}

	deleted, err := h.Users.SoftDelete(c.Request.Context(), id)
	if errors.Is(err, stores.ErrNotFound) {
		c.String(http.StatusBadRequest, MsgUserDoesNotExist)
		return
	} else if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.InfoContext(c.Request.Context(), "user soft-deleted",
		"user_id", id,
		"by", c.GetString(middleware.CtxUserID),
		"jti", c.GetString(middleware.CtxTokenID),
	)
	c.JSON(http.StatusOK, deleted)
}

// activeUser loads a user that exists and is not soft-deleted. On false
// the response has already been written.
func (h *UserHandler) activeUser(c *gin.Context, id string) (*models.User, bool) {
	u, err := h.Users.GetByID(c.Request.Context(), id)
	if errors.Is(err, stores.ErrNotFound) || (err == nil && u.Deleted) {
		c.String(http.StatusBadRequest, MsgUserDoesNotExist)
		return nil, false
	} else if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return u, true
}

// bindAndValidate decodes the JSON body into req and checks its shape.
// An empty body decodes to the zero value. On false the response has
// already been written.
func (h *UserHandler) bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.String(http.StatusBadRequest, MsgInvalidBody)
		return false
	}

	if err := h.Validator.Validate(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			c.String(http.StatusBadRequest, verr.Message)
			return false
		}
		h.fail(c, err)
		return false
	}
	return true
}

// fail hands an unexpected error to middleware.ErrorHandler.
func (h *UserHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
