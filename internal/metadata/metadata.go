package metadata

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/pkg/errors"
)

const (
	pathToken            string = "/latest/api/token"
	pathAvailabilityZone string = "/latest/meta-data/placement/availability-zone"
	pathInstanceId       string = "/latest/meta-data/instance-id"
	pathPublicIp         string = "/latest/meta-data/public-ipv4"
)

const (
	headerTokenTtl string = "X-aws-ec2-metadata-token-ttl-seconds"
	headerToken    string = "X-aws-ec2-metadata-token"
)

const (
	defaultEndpoint string        = "http://169.254.169.254"
	defaultTimeout  time.Duration = time.Second
	defaultTokenTtl int64         = 21600
)

// Metadata probes the instance metadata service (imds v2); every call
// pays the full round trip, nothing is cached between calls
type Metadata interface {
	InstanceMetadata(ctx context.Context) (*data.InstanceMetadata, error)
}

type prober struct {
	config struct {
		endpoint string
		timeout  time.Duration
		tokenTtl int64
	}
	*http.Client
	utilities.Logger
}

func NewProber(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Metadata
} {
	p := &prober{Client: &http.Client{}, Logger: utilities.NewLogger()}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case utilities.Logger:
			p.Logger = v
		}
	}
	return p
}

func (p *prober) Configure(envs map[string]string) error {
	p.config.endpoint = defaultEndpoint
	p.config.timeout = defaultTimeout
	p.config.tokenTtl = defaultTokenTtl
	if endpoint, ok := envs["METADATA_ENDPOINT"]; ok && endpoint != "" {
		p.config.endpoint = endpoint
	}
	if timeout, ok := envs["METADATA_TIMEOUT"]; ok {
		if i, err := strconv.ParseInt(timeout, 10, 64); err == nil && i > 0 {
			p.config.timeout = time.Duration(i) * time.Second
		}
	}
	if tokenTtl, ok := envs["METADATA_TOKEN_TTL"]; ok {
		if i, err := strconv.ParseInt(tokenTtl, 10, 64); err == nil && i > 0 {
			p.config.tokenTtl = i
		}
	}
	return nil
}

func (p *prober) Open(ctx context.Context) error {
	return nil
}

func (p *prober) Close(ctx context.Context) error {
	return nil
}

func (p *prober) fetchToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.timeout)
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodPut,
		p.config.endpoint+pathToken, nil)
	if err != nil {
		return "", err
	}
	request.Header.Set(headerTokenTtl, strconv.FormatInt(p.config.tokenTtl, 10))
	response, err := p.Do(request)
	if err != nil {
		return "", errors.Wrap(err, "error while fetching metadata token")
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return "", errors.Errorf("error while fetching metadata token: %s",
			response.Status)
	}
	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (p *prober) lookup(ctx context.Context, token, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.timeout)
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.config.endpoint+path, nil)
	if err != nil {
		return "", err
	}
	request.Header.Set(headerToken, token)
	response, err := p.Do(request)
	if err != nil {
		return "", errors.Wrapf(err, "error while fetching %s", path)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return "", errors.Errorf("error while fetching %s: %s", path,
			response.Status)
	}
	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// InstanceMetadata performs the token handshake and the three
// dependent lookups; any single failure fails the whole probe
func (p *prober) InstanceMetadata(ctx context.Context) (*data.InstanceMetadata, error) {
	token, err := p.fetchToken(ctx)
	if err != nil {
		return nil, err
	}
	availabilityZone, err := p.lookup(ctx, token, pathAvailabilityZone)
	if err != nil {
		return nil, err
	}
	instanceId, err := p.lookup(ctx, token, pathInstanceId)
	if err != nil {
		return nil, err
	}
	publicIp, err := p.lookup(ctx, token, pathPublicIp)
	if err != nil {
		return nil, err
	}
	return &data.InstanceMetadata{
		AvailabilityZone: availabilityZone,
		InstanceId:       instanceId,
		PublicIp:         publicIp,
	}, nil
}
