package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ストレージ・レポート保存先のドライバー名です。
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageDynamoDB = "dynamodb"

	ReportNone  = "none"
	ReportLocal = "local"
	ReportS3    = "s3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Registry RegistryConfig `yaml:"registry"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Report   ReportConfig   `yaml:"report"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr           string        `yaml:"listen_addr"`
	ReadHeaderTimeout    time.Duration `yaml:"-"`
	ShutdownTimeout      time.Duration `yaml:"-"`
	ReadHeaderTimeoutRaw string        `yaml:"read_header_timeout"`
	ShutdownTimeoutRaw   string        `yaml:"shutdown_timeout"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RegistryConfig は社員台帳そのものの設定です。
type RegistryConfig struct {
	StorageKey      string  `yaml:"storage_key"`
	SalaryThreshold float64 `yaml:"salary_threshold"`
}

// StorageConfig は台帳を保存するキーバリューストアの設定です。
type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	File     FileConfig     `yaml:"file"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
}

// FileConfig はディレクトリ保存の設定です。
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// DynamoDBConfig は DynamoDB テーブルの設定です。
type DynamoDBConfig struct {
	Table string    `yaml:"table"`
	AWS   AWSConfig `yaml:"aws"`
}

// AWSConfig は AWS クライアント共通の設定です。Endpoint はローカルエミュレーター向けです。
type AWSConfig struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// ReportConfig は生成した CSV レポートの保存先設定です。
type ReportConfig struct {
	Driver string         `yaml:"driver"`
	Local  FileConfig     `yaml:"local"`
	S3     S3ReportConfig `yaml:"s3"`
}

// S3ReportConfig は S3 保存先の設定です。
type S3ReportConfig struct {
	Bucket       string    `yaml:"bucket"`
	Prefix       string    `yaml:"prefix"`
	UsePathStyle bool      `yaml:"use_path_style"`
	AWS          AWSConfig `yaml:"aws"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	ApplicationName    string        `yaml:"application_name"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// Load は指定されたパスから設定ファイルを読み込みます。${VAR} 形式は環境変数で展開されます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(b))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = "json"
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}

	if strings.TrimSpace(c.Registry.StorageKey) == "" {
		c.Registry.StorageKey = "employees_v1"
	}
	if c.Registry.SalaryThreshold < 0 {
		return fmt.Errorf("config: registry.salary_threshold must not be negative")
	}
	if c.Registry.SalaryThreshold == 0 {
		c.Registry.SalaryThreshold = 5000
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	return c.Report.validateAndNormalize()
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return fmt.Errorf("config: server.listen_addr: %w", err)
	}

	readHeader, err := parseDurationAllowEmpty(s.ReadHeaderTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.read_header_timeout: %w", err)
	}
	if readHeader == 0 {
		readHeader = 5 * time.Second
	}
	s.ReadHeaderTimeout = readHeader

	shutdown, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdown == 0 {
		shutdown = 10 * time.Second
	}
	s.ShutdownTimeout = shutdown

	return nil
}

func (c *Config) validateStorage() error {
	s := &c.Storage
	if s.Driver == "" {
		s.Driver = StorageFile
	}

	switch s.Driver {
	case StorageMemory:
		return nil
	case StorageFile:
		if s.File.Dir == "" {
			s.File.Dir = "data"
		}
		return nil
	case StoragePostgres:
		return c.Database.validateAndNormalize()
	case StorageDynamoDB:
		if s.DynamoDB.Table == "" {
			return fmt.Errorf("config: storage.dynamodb.table must be set")
		}
		s.DynamoDB.AWS.normalize()
		return nil
	default:
		return fmt.Errorf("config: unsupported storage.driver %q", s.Driver)
	}
}

func (r *ReportConfig) validateAndNormalize() error {
	if r.Driver == "" {
		r.Driver = ReportNone
	}

	switch r.Driver {
	case ReportNone:
		return nil
	case ReportLocal:
		if r.Local.Dir == "" {
			r.Local.Dir = "reports"
		}
		return nil
	case ReportS3:
		if r.S3.Bucket == "" {
			return fmt.Errorf("config: report.s3.bucket must be set")
		}
		r.S3.Prefix = strings.Trim(r.S3.Prefix, "/")
		r.S3.AWS.normalize()
		return nil
	default:
		return fmt.Errorf("config: unsupported report.driver %q", r.Driver)
	}
}

func (a *AWSConfig) normalize() {
	if a.Region == "" {
		a.Region = "us-east-1"
	}
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

// DSN は pgx 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
