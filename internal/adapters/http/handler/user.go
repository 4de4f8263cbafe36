package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/gin-gonic/gin"
)

const photoField = "file"

// CookieConfig はセッション Cookie の属性です。
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

// UserHandler はアカウント関連のエンドポイントです。
type UserHandler struct {
	svc    account.UseCase
	cookie CookieConfig
	logger *slog.Logger
}

// NewUserHandler は UserHandler を生成します。
func NewUserHandler(svc account.UseCase, cookie CookieConfig, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{svc: svc, cookie: cookie, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register は multipart フォームで送られたアカウントを登録します。
func (h *UserHandler) Register(c *gin.Context) {
	photo, closeFn, err := formPhoto(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer closeFn()

	_, err = h.svc.Register(c.Request.Context(), account.RegisterInput{
		Fullname:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Password:    c.PostForm("password"),
		Role:        c.PostForm("role"),
		Photo:       photo,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Account created successfully.", nil)
}

// Login は認証に成功するとセッション Cookie を設定します。
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, account.ErrMissingFields)
		return
	}

	session, err := h.svc.Login(c.Request.Context(), account.LoginInput(req))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if h.cookie.MaxAge > 0 {
		maxAge = int(h.cookie.MaxAge.Seconds())
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, session.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)

	respond(c, http.StatusOK, fmt.Sprintf("Welcome back, %s", session.User.Fullname), gin.H{
		"user":  toUserView(session.User),
		"token": session.Token,
	})
}

// Logout はセッション Cookie を破棄します。サーバー側の状態は持ちません。
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	respond(c, http.StatusOK, "Logged out successfully.", nil)
}

// UpdateProfile は認証済みユーザーのプロフィールを部分更新します。
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	photo, closeFn, err := formPhoto(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer closeFn()

	updated, err := h.svc.UpdateProfile(c.Request.Context(), account.UpdateProfileInput{
		UserID:      currentUserID(c),
		Fullname:    optionalForm(c, "fullname"),
		Email:       optionalForm(c, "email"),
		PhoneNumber: optionalForm(c, "phoneNumber"),
		Bio:         optionalForm(c, "bio"),
		Skills:      optionalForm(c, "skills"),
		Photo:       photo,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully.", gin.H{"user": toUserView(updated)})
}

// Me は認証済みユーザーを返します。
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": toUserView(u)})
}

// formPhoto はアップロードされた画像を取り出します。ファイルが無い場合 photo は nil です。
func formPhoto(c *gin.Context) (*account.Photo, func(), error) {
	noop := func() {}

	header, err := c.FormFile(photoField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("malformed form: %v: %w", err, account.ErrMissingFields)
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open uploaded file: %w", err)
	}
	return toPhoto(header, file), func() { _ = file.Close() }, nil
}

func toPhoto(header *multipart.FileHeader, file multipart.File) *account.Photo {
	return &account.Photo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
}

func optionalForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
