package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrUploadRejected はアップロード先がリクエストを拒否した場合に返却されます。
var ErrUploadRejected = errors.New("storage: upload rejected")

// CloudinaryConfig は Cloudinary への署名付きアップロード設定です。
type CloudinaryConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// CloudinaryStore はプロフィール画像を Cloudinary へアップロードします。
type CloudinaryStore struct {
	client *resty.Client
	cfg    CloudinaryConfig
	now    func() time.Time
}

// NewCloudinaryStore は CloudinaryStore を生成します。
func NewCloudinaryStore(cfg CloudinaryConfig) *CloudinaryStore {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &CloudinaryStore{
		client: client,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Upload は画像をアップロードし、secure_url を返します。
func (s *CloudinaryStore) Upload(ctx context.Context, photo account.Photo) (string, error) {
	if photo.Content == nil {
		return "", fmt.Errorf("storage: empty photo content")
	}

	params := map[string]string{
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	if s.cfg.Folder != "" {
		params["folder"] = s.cfg.Folder
	}

	form := make(map[string]string, len(params)+2)
	for k, v := range params {
		form[k] = v
	}
	form["api_key"] = s.cfg.APIKey
	form["signature"] = sign(params, s.cfg.APISecret)

	filename := photo.Filename
	if filename == "" {
		filename = "upload"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetFileReader("file", path.Base(filename), photo.Content).
		Post("/" + url.PathEscape(s.cfg.CloudName) + "/image/upload")
	if err != nil {
		return "", fmt.Errorf("storage: upload request: %w", err)
	}

	body := resp.Body()
	if resp.IsError() {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("%w: %s", ErrUploadRejected, msg)
	}

	secureURL := gjson.GetBytes(body, "secure_url").String()
	if secureURL == "" {
		return "", fmt.Errorf("%w: response has no secure_url", ErrUploadRejected)
	}
	return secureURL, nil
}

// sign は Cloudinary の署名規則に従い、キー順に連結したパラメータへ秘密鍵を付けて SHA-1 を取ります。
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
