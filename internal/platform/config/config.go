package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTokenTTL     = 24 * time.Hour
	defaultBcryptCost   = 10
	defaultCookieName   = "token"
	defaultSMTPPort     = 587
	defaultMailTimeout  = 10 * time.Second
	defaultUploadFolder = "jobhunt/profile"
	defaultStorageURL   = "https://api.cloudinary.com/v1_1"
	defaultStorageWait  = 30 * time.Second
	defaultBrandLogoURL = "https://res.cloudinary.com/dpdqhtova/image/upload/v1742187205/jobhunt_qn5wpt.jpg"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Mail         MailConfig         `yaml:"mail"`
	Storage      StorageConfig      `yaml:"storage"`
	Applications ApplicationsConfig `yaml:"applications"`
}

// ServerConfig は HTTP / gRPC サーバーに関する設定です。
type ServerConfig struct {
	HTTPAddr       string   `yaml:"http_addr"`
	GRPCAddr       string   `yaml:"grpc_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// AuthConfig はパスワードハッシュとセッショントークンに関する設定です。
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"-"`
	TokenTTLRaw  string        `yaml:"token_ttl"`
	BcryptCost   int           `yaml:"bcrypt_cost"`
	CookieName   string        `yaml:"cookie_name"`
	CookieDomain string        `yaml:"cookie_domain"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// MailConfig は SMTP リレーに関する設定です。Host が空の場合メール送信は無効になります。
type MailConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	From         string        `yaml:"from"`
	BrandLogoURL string        `yaml:"brand_logo_url"`
	Timeout      time.Duration `yaml:"-"`
	TimeoutRaw   string        `yaml:"timeout"`
}

// Enabled は SMTP 送信が設定されているかを返します。
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// StorageConfig はプロフィール画像のアップロード先に関する設定です。
type StorageConfig struct {
	CloudName  string        `yaml:"cloud_name"`
	APIKey     string        `yaml:"api_key"`
	APISecret  string        `yaml:"api_secret"`
	Folder     string        `yaml:"folder"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// ApplicationsConfig は応募ステータス遷移に関する設定です。
type ApplicationsConfig struct {
	StrictTransitions bool `yaml:"strict_transitions"`
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
// API サーバー用にすべてのセクションを検証します。
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase は database セクションのみを検証して返します。マイグレーション用です。
func LoadDatabase(path string) (*DatabaseConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg.Database, nil
}

func read(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv は .env ファイルを読み込みます。ファイルが存在しない場合は何もしません。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load dotenv: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv は秘密情報を環境変数から上書きします。
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(target *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*target = strings.TrimSpace(v)
				return
			}
		}
	}

	str(&c.Auth.JWTSecret, "JWT_SECRET", "SECRET_KEY")
	str(&c.Mail.Host, "SMTP_SERVER")
	str(&c.Mail.Username, "SMTP_EMAIL")
	str(&c.Mail.Password, "SMTP_PASSWORD")
	str(&c.Storage.CloudName, "CLOUDINARY_CLOUD_NAME", "CLOUD_NAME")
	str(&c.Storage.APIKey, "CLOUDINARY_API_KEY", "API_KEY")
	str(&c.Storage.APISecret, "CLOUDINARY_API_SECRET", "API_SECRET")

	if v, ok := lookup("SMTP_PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: SMTP_PORT: %w", err)
		}
		c.Mail.Port = port
	}

	return nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("config: server.http_addr must be set")
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Auth.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Mail.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Storage.validateAndNormalize(); err != nil {
		return err
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (a *AuthConfig) validateAndNormalize() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must be set")
	}

	ttl, err := parseDurationAllowEmpty(a.TokenTTLRaw)
	if err != nil {
		return fmt.Errorf("config: auth.token_ttl: %w", err)
	}
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	a.TokenTTL = ttl

	if a.BcryptCost == 0 {
		a.BcryptCost = defaultBcryptCost
	}
	if a.CookieName == "" {
		a.CookieName = defaultCookieName
	}
	return nil
}

func (m *MailConfig) validateAndNormalize() error {
	timeout, err := parseDurationAllowEmpty(m.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: mail.timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultMailTimeout
	}
	m.Timeout = timeout

	if m.BrandLogoURL == "" {
		m.BrandLogoURL = defaultBrandLogoURL
	}

	if !m.Enabled() {
		return nil
	}
	if m.Port == 0 {
		m.Port = defaultSMTPPort
	}
	if m.From == "" {
		m.From = m.Username
	}
	if m.From == "" {
		return fmt.Errorf("config: mail.from must be set when mail.host is configured")
	}
	return nil
}

func (s *StorageConfig) validateAndNormalize() error {
	if s.CloudName == "" {
		return fmt.Errorf("config: storage.cloud_name must be set")
	}
	if s.APIKey == "" || s.APISecret == "" {
		return fmt.Errorf("config: storage.api_key and storage.api_secret must be set")
	}
	if s.Folder == "" {
		s.Folder = defaultUploadFolder
	}
	if s.BaseURL == "" {
		s.BaseURL = defaultStorageURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")

	timeout, err := parseDurationAllowEmpty(s.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: storage.timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultStorageWait
	}
	s.Timeout = timeout
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
