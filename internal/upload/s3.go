package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Store uploads through pre-signed PUT requests, the same URLs the browser
// gets from Presign.
type S3Store struct {
	bucket     string
	publicBase string
	presigner  *s3.PresignClient
	httpClient *http.Client
	now        func() time.Time
}

func NewS3Store(cfg S3Config, httpClient *http.Client) *S3Store {
	awsCfg := aws.Config{
		Region:     cfg.Region,
		HTTPClient: httpClient,
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		if cfg.Endpoint != "" {
			publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Store{
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		presigner:  s3.NewPresignClient(client),
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (s *S3Store) publicURL(key string) string {
	return s.publicBase + "/" + (&url.URL{Path: key}).EscapedPath()
}

func (s *S3Store) Owns(rawURL string) bool {
	base, err := url.Parse(s.publicBase)
	if err != nil {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return false
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return false
	}

	prefix := strings.TrimRight(base.Path, "/") + "/" + keyPrefix
	if !strings.HasPrefix(u.Path, prefix) || path.Clean(u.Path) != u.Path {
		return false
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if key == "" || strings.Contains(key, "/") {
		return false
	}
	switch path.Ext(key) {
	case ".pdf", ".webp":
		return true
	}
	return false
}

func (s *S3Store) Presign(ctx context.Context, key, contentType string) (*PresignedPut, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	headers := req.SignedHeader.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	headers.Del("Host")
	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", contentType)
	}

	return &PresignedPut{
		URL:       req.URL,
		Method:    req.Method,
		Headers:   headers,
		PublicURL: s.publicURL(key),
		ExpiresAt: s.now().Add(PresignExpiry),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	signed, err := s.Presign(ctx, key, contentType)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, signed.Method, signed.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	for k, vs := range signed.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.ContentLength = int64(len(body))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("put %s: bucket answered %d", key, resp.StatusCode)
	}
	return signed.PublicURL, nil
}
