package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	Port string `yaml:"PORT"`

	// AWS
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Receipt store
	StoreBackend string `yaml:"STORE_BACKEND"`
	TableName    string `yaml:"TABLE_NAME"`

	// Database configuration (postgres backend only)
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Mailing
	MailProvider     string `yaml:"MAIL_PROVIDER"`
	SESFrom          string `yaml:"SES_FROM"`
	SESTo            string `yaml:"SES_TO"`
	SESRegion        string `yaml:"SES_REGION"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Insights
	BedrockModelID string `yaml:"BEDROCK_MODEL_ID"`

	// History window
	HistoryWindowDays string `yaml:"HISTORY_WINDOW_DAYS"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
}

var config Config

var configDefaults = map[string]string{
	"PORT":                "8080",
	"AWS_S3_REGION":       "us-west-1",
	"STORE_BACKEND":       "dynamodb",
	"TABLE_NAME":          "receipts",
	"MAIL_PROVIDER":       "ses",
	"SES_FROM":            "your-email@example.com",
	"SES_TO":              "recipient@example.com",
	"SES_REGION":          "us-west-2",
	"BEDROCK_MODEL_ID":    "anthropic.claude-3-5-sonnet-20240620-v1:0",
	"HISTORY_WINDOW_DAYS": "30",
}

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig resolves a key from the environment first, then config.yaml,
// then the documented defaults.
func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	var v string
	switch key {
	case "PORT":
		v = config.Port
	case "AWS_S3_BUCKET":
		v = config.AWSS3Bucket
	case "AWS_S3_REGION":
		v = config.AWSS3Region
	case "AWS_ACCESS_KEY":
		v = config.AWSAccessKey
	case "AWS_SECRET_KEY":
		v = config.AWSSecretKey
	case "STORE_BACKEND":
		v = config.StoreBackend
	case "TABLE_NAME":
		v = config.TableName
	case "DB_USER":
		v = config.DBUser
	case "DB_NAME":
		v = config.DBName
	case "DB_PASSWORD":
		v = config.DBPassword
	case "DB_PORT":
		v = config.DBPort
	case "DB_HOST":
		v = config.DBHost
	case "MAIL_PROVIDER":
		v = config.MailProvider
	case "SES_FROM":
		v = config.SESFrom
	case "SES_TO":
		v = config.SESTo
	case "SES_REGION":
		v = config.SESRegion
	case "SMTP_HOST":
		v = config.SMTPHost
	case "SMTP_PORT":
		v = config.SMTPPort
	case "SMTP_SENDER_NAME":
		v = config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		v = config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		v = config.SMTPAuthPassword
	case "BEDROCK_MODEL_ID":
		v = config.BedrockModelID
	case "HISTORY_WINDOW_DAYS":
		v = config.HistoryWindowDays
	case "JWT_SECRET":
		v = config.JWTSecret
	}

	if v == "" {
		return configDefaults[key]
	}
	return v
}
