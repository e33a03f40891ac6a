package config

import (
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/tracing"
)

type AppConfig struct {
	APIPort     string `env:"PORT" envDefault:"12240"`
	APIKey      string `env:"API_KEY,required"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
	Logger      *logger.Config
	Tracing     *tracing.JaegerConfig
}

type DatabaseConfig struct {
	Host            string `env:"CVINTAKE_POSTGRES_HOST,required"`
	Port            string `env:"CVINTAKE_POSTGRES_PORT,required"`
	User            string `env:"CVINTAKE_POSTGRES_USER,required"`
	DBName          string `env:"CVINTAKE_POSTGRES_DB_NAME,required"`
	Password        string `env:"CVINTAKE_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"CVINTAKE_POSTGRES_DB_MAX_CONN" envDefault:"25"`
	MaxIdleConn     int    `env:"CVINTAKE_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"CVINTAKE_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"CVINTAKE_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"CVINTAKE_POSTGRES_SSL_MODE" envDefault:"disable"`
}

// GmailConfig locates the OAuth client material and scopes the mailbox scan.
// Interactive consent is handled out of band; the service only reads the
// credential and cached token files.
type GmailConfig struct {
	CredentialsFile string `env:"GMAIL_CREDENTIALS_FILE" envDefault:"client_secret.json"`
	TokenFile       string `env:"GMAIL_TOKEN_FILE" envDefault:"token.json"`
	MailboxLabel    string `env:"GMAIL_MAILBOX_LABEL" envDefault:"INBOX"`
	SenderAddress   string `env:"GMAIL_SENDER_ADDRESS,required"`
}

type StorageConfig struct {
	// "drive" or "s3"
	Backend string `env:"STORAGE_BACKEND" envDefault:"drive"`

	AWSRegion          string `env:"AWS_REGION"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSAccessKeySecret string `env:"AWS_ACCESS_KEY_SECRET"`
	AttachmentBucket   string `env:"BUCKET_NAME_CV_ATTACHMENT" envDefault:"cv-attachments"`
}

type ConverterConfig struct {
	Executable string `env:"CONVERTER_EXECUTABLE,required"`
	Script     string `env:"CONVERTER_SCRIPT,required"`
	WorkDir    string `env:"CONVERTER_WORK_DIR"`
	TempDir    string `env:"CONVERTER_TEMP_DIR"`
}

type IngestionConfig struct {
	AcceptedExtensions []string `env:"INGESTION_ACCEPTED_EXTENSIONS" envSeparator:"," envDefault:".pdf,.docx"`
}
