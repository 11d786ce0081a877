package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal/metadata"

	"github.com/stretchr/testify/assert"
)

const testToken string = "test-imds-token"

// imdsHandler mimics the imds v2 contract: a token is acquired with a
// put and every lookup must present it
func imdsHandler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/latest/api/token", func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPut {
			writer.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		assert.NotEmpty(t, request.Header.Get("X-aws-ec2-metadata-token-ttl-seconds"))
		_, _ = writer.Write([]byte(testToken))
	})
	lookup := func(value string) http.HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get("X-aws-ec2-metadata-token") != testToken {
				writer.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = writer.Write([]byte(value))
		}
	}
	mux.HandleFunc("/latest/meta-data/placement/availability-zone", lookup("us-east-1a"))
	mux.HandleFunc("/latest/meta-data/instance-id", lookup("i-0123456789abcdef0"))
	mux.HandleFunc("/latest/meta-data/public-ipv4", lookup("203.0.113.25"))
	return mux
}

func TestInstanceMetadata(t *testing.T) {
	server := httptest.NewServer(imdsHandler(t))
	defer server.Close()

	prober := metadata.NewProber()
	err := prober.Configure(map[string]string{
		"METADATA_ENDPOINT": server.URL,
	})
	assert.Nil(t, err)

	instanceMetadata, err := prober.InstanceMetadata(context.TODO())
	assert.Nil(t, err)
	assert.NotNil(t, instanceMetadata)
	assert.Equal(t, "us-east-1a", instanceMetadata.AvailabilityZone)
	assert.Equal(t, "i-0123456789abcdef0", instanceMetadata.InstanceId)
	assert.Equal(t, "203.0.113.25", instanceMetadata.PublicIp)
}

func TestInstanceMetadataUnreachable(t *testing.T) {
	// a closed server refuses the token handshake
	server := httptest.NewServer(imdsHandler(t))
	server.Close()

	prober := metadata.NewProber()
	err := prober.Configure(map[string]string{
		"METADATA_ENDPOINT": server.URL,
	})
	assert.Nil(t, err)

	instanceMetadata, err := prober.InstanceMetadata(context.TODO())
	assert.NotNil(t, err)
	assert.Nil(t, instanceMetadata)
}

func TestInstanceMetadataTimeout(t *testing.T) {
	var requests int32

	// the handler stalls longer than the configured timeout
	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&requests, 1)
			time.Sleep(3 * time.Second)
		}))
	defer server.Close()

	prober := metadata.NewProber()
	err := prober.Configure(map[string]string{
		"METADATA_ENDPOINT": server.URL,
		"METADATA_TIMEOUT":  "1",
	})
	assert.Nil(t, err)

	start := time.Now()
	instanceMetadata, err := prober.InstanceMetadata(context.TODO())
	assert.NotNil(t, err)
	assert.Nil(t, instanceMetadata)

	// the token handshake times out and no lookups follow
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestInstanceMetadataTokenRefused(t *testing.T) {
	// a self-standing handler that refuses the token handshake
	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
		}))
	defer server.Close()

	prober := metadata.NewProber()
	err := prober.Configure(map[string]string{
		"METADATA_ENDPOINT": server.URL,
	})
	assert.Nil(t, err)

	instanceMetadata, err := prober.InstanceMetadata(context.TODO())
	assert.NotNil(t, err)
	assert.Nil(t, instanceMetadata)
}
