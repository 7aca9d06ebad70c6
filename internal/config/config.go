package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"

	DefaultSMTPHost = "smtp.gmail.com"
)

type Config struct {
	Env           string        `yaml:"env" env:"ENV" env-default:"local"`
	DSN           string        `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	StatsCacheTTL time.Duration `yaml:"stats_cache_ttl" env:"STATS_CACHE_TTL" env-default:"0s"`
	HTTP          HTTPConfig    `yaml:"http"`
	Storage       StorageConfig `yaml:"storage"`
	Mail          MailConfig    `yaml:"mail"`
	Redis         RedisConf     `yaml:"redis"`
}

type HTTPConfig struct {
	Host           string        `yaml:"host" env:"HOST"`
	Port           string        `yaml:"port" env:"PORT" env-default:"5000"`
	BaseURL        string        `yaml:"base_url" env:"BASE_URL"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,https://architylez.vercel.app"`
	Timeout        time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"60s"`
	// BodyLimit общий потолок тела запроса, в формате echo ("60M")
	BodyLimit      string        `yaml:"body_limit" env:"HTTP_BODY_LIMIT" env-default:"60M"`
}

type StorageConfig struct {
	Provider string      `yaml:"provider" env:"STORAGE_PROVIDER" env-default:"local"`
	Local    LocalConfig `yaml:"local"`
	Minio    MinioConfig `yaml:"minio"`
}

type LocalConfig struct {
	Root string `yaml:"root" env:"UPLOADS_DIR" env-default:"uploads"`
}

type MinioConfig struct {
	Endpoint           string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey          string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey          string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket             string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"architylez"`
	UseSSL             bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
	PublicURL          string `yaml:"public_url" env:"MINIO_PUBLIC_URL"`
	PreviewURLTemplate string `yaml:"preview_url_template" env:"MINIO_PREVIEW_URL_TEMPLATE"`
}

// MailConfig описывает SMTP-релей для уведомлений администратора.
// Без Host и Username письма не отправляются, а только пишутся в лог.
type MailConfig struct {
	Host         string `yaml:"host" env:"SMTP_HOST"`
	Port         int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username     string `yaml:"username" env:"ADMIN_EMAIL"`
	Password     string `yaml:"password" env:"ADMIN_EMAIL_PASSWORD"`
	AdminAddress string `yaml:"admin_address" env:"ADMIN_NOTIFY_EMAIL"`
	FromName     string `yaml:"from_name" env:"MAIL_FROM_NAME" env-default:"Website Contact Form"`
}

type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	ContactLimit  int           `yaml:"contact_limit" env:"CONTACT_RATE_LIMIT" env-default:"5"`
	ContactWindow time.Duration `yaml:"contact_window" env:"CONTACT_RATE_WINDOW" env-default:"10m"`
}

// MustLoad reads the config file given by --config or CONFIG_PATH.
// Without a path the configuration comes from the environment only.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		return MustLoadEnv()
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.normalize()

	return &cfg
}

func MustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from env: " + err.Error())
	}

	cfg.normalize()

	return &cfg
}

func (c *Config) normalize() {
	// учетка задана, а релей нет: отправляем через gmail
	if c.Mail.Host == "" && c.Mail.Username != "" {
		c.Mail.Host = DefaultSMTPHost
	}
	if c.Mail.AdminAddress == "" {
		c.Mail.AdminAddress = c.Mail.Username
	}
	if c.Storage.Provider == "" {
		c.Storage.Provider = StorageLocal
	}
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
