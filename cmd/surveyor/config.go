package main

import "github.com/threatops/surveyor/internal/cbr"

const (
	defaultProfile  = cbr.DefaultProfile
	defaultWorkers  = 1
	defaultPageSize = 100
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI
// entrypoint.
type appConfig struct {
	CredentialsFile string `mapstructure:"credentials-file"`
	Profile         string `mapstructure:"profile"`
	Workers         int    `mapstructure:"workers"`
	PageSize        int    `mapstructure:"page-size"`

	UploadEnabled      bool   `mapstructure:"upload-enabled"`
	UploadBucketURL    string `mapstructure:"upload-bucket-url"`
	UploadS3Endpoint   string `mapstructure:"upload-s3-endpoint"`
	UploadS3Region     string `mapstructure:"upload-s3-region"`
	UploadS3AccessKey  string `mapstructure:"upload-s3-access-key"`
	UploadS3SecretKey  string `mapstructure:"upload-s3-secret-key"`
	UploadS3SessToken  string `mapstructure:"upload-s3-session-token"`
	UploadS3UseSSL     bool   `mapstructure:"upload-use-ssl"`

	ConfigPath string `mapstructure:"-"` // not from config file
}
