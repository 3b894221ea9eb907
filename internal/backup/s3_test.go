package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Uploader(t *testing.T) {
	base := S3Config{
		Bucket:          "clinica-backups",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		Prefix:          "backups",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}

	t.Run("static credentials", func(t *testing.T) {
		u, err := NewS3Uploader(base)
		require.NoError(t, err)
		assert.Equal(t, "clinica-backups", u.bucket)
		assert.Equal(t, "backups", u.prefix)
		assert.NotNil(t, u.client.Options().Credentials)
		assert.True(t, u.client.Options().UsePathStyle)
	})

	t.Run("no bucket", func(t *testing.T) {
		cfg := base
		cfg.Bucket = ""
		_, err := NewS3Uploader(cfg)
		assert.ErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("missing keys", func(t *testing.T) {
		for _, cfg := range []S3Config{
			{Bucket: "b", Region: "us-east-1"},
			{Bucket: "b", Region: "us-east-1", AccessKeyID: "key"},
			{Bucket: "b", Region: "us-east-1", SecretAccessKey: "secret"},
		} {
			_, err := NewS3Uploader(cfg)
			assert.ErrorIs(t, err, ErrCredentialsMissing)
		}
	})
}
