package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                 bool   `envconfig:"debug"`
	Port                  int    `envconfig:"port"`
	Env                   string `envconfig:"env"`
	BaseUrl               string `envconfig:"base_url"`
	FrontendUrl           string `envconfig:"frontend_url"`
	PostgresHost          string `envconfig:"postgres_host"`
	PostgresPort          int    `envconfig:"postgres_port"`
	PostgresUser          string `envconfig:"postgres_user"`
	PostgresPassword      string `envconfig:"postgres_password"`
	PostgresDB            string `envconfig:"postgres_db"`
	JWTSecret             string `envconfig:"jwt_secret"`
	MailgunApiKey         string `envconfig:"mg_public_api_key"`
	MgDomain              string `envconfig:"mg_domain"`
	MgEmailFrom           string `envconfig:"email_from"`
	AwsRegion             string `envconfig:"aws_region"`
	AwsAccessKeyID        string `envconfig:"aws_access_key_id"`
	AwsSecretAccessKey    string `envconfig:"aws_secret_access_key"`
	AwsBucket             string `envconfig:"aws_bucket"`
	ImageHostUploadUrl    string `envconfig:"image_host_upload_url"`
	ImageHostUploadPreset string `envconfig:"image_host_upload_preset"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("fraudline", c)
	if err != nil {
		return nil, err
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	return c, nil
}
