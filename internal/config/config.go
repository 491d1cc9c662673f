package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl"` // срок жизни сессионного токена, минуты
	} `yaml:"jwt"`

	OTP struct {
		TTLMinutes int    `yaml:"ttl"`    // срок жизни кода, минуты
		Digits     int    `yaml:"digits"` // длина кода
		TestMode   bool   `yaml:"test_mode"`
		TestCode   string `yaml:"test_code"` // фиксированный код, только при test_mode
	} `yaml:"otp"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Storage struct {
		Type       string `yaml:"type"`       // local, cloudflare_r2
		BasePath   string `yaml:"base_path"`  // для local
		BaseURL    string `yaml:"base_url"`   // публичный URL
		Bucket     string `yaml:"bucket"`     // для R2
		AccessKey  string `yaml:"access_key"` // для R2
		SecretKey  string `yaml:"secret_key"` // для R2
		Endpoint   string `yaml:"endpoint"`   // для R2
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize        int64    `yaml:"max_size"`        // максимальный размер файла, байты
		MaxArchiveSize int64    `yaml:"max_archive_size"` // максимальный размер архива исходников
		AllowedTypes   []string `yaml:"allowed_types"`   // разрешенные MIME-типы изображений
	} `yaml:"upload"`

	Download struct {
		FreeLimit int    `yaml:"free_limit"` // бесплатных скачиваний на идентичность
		LinkBase  string `yaml:"link_base"`  // база для ссылок на скачивание в письмах
	} `yaml:"download"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если задан DATABASE_URL — конфиг собирается из переменных окружения
// (режим тестов/CI), иначе читается config/config.yaml.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLMinutes = 24 * 60

	cfg.OTP.TTLMinutes = 5
	cfg.OTP.Digits = 6
	cfg.OTP.TestMode = os.Getenv("OTP_TEST_MODE") == "true"
	cfg.OTP.TestCode = os.Getenv("OTP_TEST_CODE")

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@templhub.test"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults дозаполняет поля, не заданные в конфиге
func applyDefaults(cfg *Config) {
	if cfg.JWT.TTLMinutes <= 0 {
		cfg.JWT.TTLMinutes = 24 * 60
	}
	if cfg.OTP.TTLMinutes <= 0 {
		cfg.OTP.TTLMinutes = 5
	}
	if cfg.OTP.Digits <= 0 {
		cfg.OTP.Digits = 6
	}
	if cfg.Upload.MaxSize <= 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.MaxArchiveSize <= 0 {
		cfg.Upload.MaxArchiveSize = 200 * 1024 * 1024 // 200MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
	if cfg.Download.FreeLimit <= 0 {
		cfg.Download.FreeLimit = 3
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
