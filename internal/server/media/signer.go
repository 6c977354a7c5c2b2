// Package media turns stored feed image references into URLs a client can
// fetch. Object keys are presigned against an S3-compatible bucket;
// absolute http(s) URLs are served as they are.
package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignExpiry is how long a presigned GET stays valid.
const PresignExpiry = 15 * time.Minute

type Signer interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Passthrough returns every reference unchanged.
type Passthrough struct{}

func (Passthrough) Resolve(_ context.Context, ref string) (string, error) {
	return ref, nil
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Signer presigns GET requests for object keys. The S3 client is built on
// first use and reused afterwards.
type S3Signer struct {
	cfg S3Config

	mu     sync.Mutex
	client *s3.PresignClient
}

func NewS3Signer(cfg S3Config) *S3Signer {
	return &S3Signer{cfg: cfg}
}

func (s *S3Signer) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	s.client = newS3PresignClient(client)
	return s.client, nil
}

// Resolve presigns ref unless it is empty or already an absolute http(s)
// URL. ref is either "s3://bucket/key" or a key in the configured bucket.
func (s *S3Signer) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || isAbsoluteURL(ref) {
		return ref, nil
	}

	bucket, key := s.cfg.Bucket, ref
	if rest, ok := strings.CutPrefix(ref, "s3://"); ok {
		var found bool
		bucket, key, found = strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return "", fmt.Errorf("invalid object reference %q", ref)
		}
	}

	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
