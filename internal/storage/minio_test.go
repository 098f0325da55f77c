package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docvault/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{
			name:    "missing endpoint",
			cfg:     config.MinIOConfig{AccessKey: "ak", SecretKey: "sk", Bucket: "docs"},
			wantErr: "minio endpoint is required",
		},
		{
			name:    "missing access key",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", SecretKey: "sk", Bucket: "docs"},
			wantErr: "minio credentials are required",
		},
		{
			name:    "missing secret key",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", Bucket: "docs"},
			wantErr: "minio credentials are required",
		},
		{
			name:    "missing bucket",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk"},
			wantErr: "minio bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMinIO(tt.cfg)

			assert.Nil(t, got)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
