package storage_test

import (
	"testing"

	"dex-wiki/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{
			name: "PlainEndpoint",
			cfg:  storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "pokedb"},
		},
		{
			name: "EndpointWithHTTP",
			cfg:  storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"},
		},
		{
			name: "EndpointWithHTTPS",
			cfg:  storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "us-east-1", TimeoutSeconds: 5},
		},
		{
			name:    "MissingEndpoint",
			cfg:     storage.Config{Endpoint: "https://"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
