package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Env  string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  int // seconds
	RefreshTokenTTL int // seconds
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Mail      MailConfig
	S3        S3Config
	GoogleAPI GoogleAPIConfig
}

var (
	instance *Config
	once     sync.Once
)

// Load reads .env (when present) and the environment, applies defaults,
// and memoizes the result. Safe to call more than once.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("APP_ENV", "development")
		v.SetDefault("APP_PORT", 8000)
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", 5432)
		v.SetDefault("DB_USER", "dingdong")
		v.SetDefault("DB_PASSWORD", "dingdong")
		v.SetDefault("DB_NAME", "dingdong")
		v.SetDefault("REDIS_HOST", "localhost")
		v.SetDefault("REDIS_PORT", 6379)
		v.SetDefault("REDIS_PASSWORD", "")
		v.SetDefault("REDIS_DB", 0)
		v.SetDefault("REDIS_KEY_PREFIX", "dingdong")
		v.SetDefault("JWT_SECRET", "dingdong-dev-secret")
		v.SetDefault("JWT_ACCESS_TTL", 60*60)
		v.SetDefault("JWT_REFRESH_TTL", 60*60*24*14)
		v.SetDefault("MAIL_HOST", "smtp.gmail.com")
		v.SetDefault("MAIL_PORT", 465)
		v.SetDefault("MAIL_USERNAME", "")
		v.SetDefault("MAIL_PASSWORD", "")
		v.SetDefault("MAIL_FROM", "no-reply@dingdong.io")
		v.SetDefault("S3_REGION", "ap-northeast-2")
		v.SetDefault("S3_BUCKET", "dingdong-exports")
		v.SetDefault("S3_ACCESS_KEY", "")
		v.SetDefault("S3_SECRET_KEY", "")
		v.SetDefault("GOOGLE_CLIENT_ID", "")
		v.SetDefault("GOOGLE_CLIENT_SECRET", "")
		v.SetDefault("GOOGLE_REDIRECT_URI", "")

		instance = &Config{
			App: AppConfig{
				Env:  v.GetString("APP_ENV"),
				Port: v.GetInt("APP_PORT"),
			},
			Database: DatabaseConfig{
				Host:     v.GetString("DB_HOST"),
				Port:     v.GetInt("DB_PORT"),
				User:     v.GetString("DB_USER"),
				Password: v.GetString("DB_PASSWORD"),
				DBName:   v.GetString("DB_NAME"),
			},
			Redis: RedisConfig{
				Host:      v.GetString("REDIS_HOST"),
				Port:      v.GetInt("REDIS_PORT"),
				Password:  v.GetString("REDIS_PASSWORD"),
				DB:        v.GetInt("REDIS_DB"),
				KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
			},
			JWT: JWTConfig{
				Secret:          v.GetString("JWT_SECRET"),
				AccessTokenTTL:  v.GetInt("JWT_ACCESS_TTL"),
				RefreshTokenTTL: v.GetInt("JWT_REFRESH_TTL"),
			},
			Mail: MailConfig{
				Host:     v.GetString("MAIL_HOST"),
				Port:     v.GetInt("MAIL_PORT"),
				Username: v.GetString("MAIL_USERNAME"),
				Password: v.GetString("MAIL_PASSWORD"),
				From:     v.GetString("MAIL_FROM"),
			},
			S3: S3Config{
				Region:    v.GetString("S3_REGION"),
				Bucket:    v.GetString("S3_BUCKET"),
				AccessKey: v.GetString("S3_ACCESS_KEY"),
				SecretKey: v.GetString("S3_SECRET_KEY"),
			},
			GoogleAPI: GoogleAPIConfig{
				ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
				ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
				RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
			},
		}
	})
	return instance
}

func Get() *Config {
	return Load()
}

// GetSafe returns the config without forcing a load.
func GetSafe() (*Config, bool) {
	if instance == nil {
		return nil, false
	}
	return instance, true
}
