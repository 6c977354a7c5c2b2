package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) (loads *int, gotInput **s3.GetObjectInput) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignGetObject = origGet
	})

	var n int
	var in *s3.GetObjectInput
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		n++
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, input *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		in = input
		return &v4.PresignedHTTPRequest{URL: "https://signed/" + *input.Bucket + "/" + *input.Key}, nil
	}
	return &n, &in
}

func newSigner() *S3Signer {
	return NewS3Signer(S3Config{
		Bucket:       "media",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
}

func TestS3Signer_PresignsKeys(t *testing.T) {
	loads, in := stubAWS(t)
	s := newSigner()

	got, err := s.Resolve(context.Background(), "feed/t1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://signed/media/feed/t1.jpg", got)

	got, err = s.Resolve(context.Background(), "s3://other/r2.png")
	require.NoError(t, err)
	assert.Equal(t, "https://signed/other/r2.png", got)
	assert.Equal(t, "r2.png", *(*in).Key)

	assert.Equal(t, 1, *loads, "client is built once")
}

func TestS3Signer_PassesThroughURLs(t *testing.T) {
	loads, _ := stubAWS(t)
	s := newSigner()

	for _, ref := range []string{"", "https://images.unsplash.com/photo.jpg", "http://cdn/x.png"} {
		got, err := s.Resolve(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}
	assert.Zero(t, *loads)
}

func TestS3Signer_Errors(t *testing.T) {
	stubAWS(t)

	_, err := newSigner().Resolve(context.Background(), "s3://bucket-only")
	assert.ErrorContains(t, err, "invalid object reference")

	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}
	_, err = newSigner().Resolve(context.Background(), "k")
	assert.EqualError(t, err, "presign-fail")

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = newSigner().Resolve(context.Background(), "k")
	assert.EqualError(t, err, "load-fail")
}

func TestPassthrough(t *testing.T) {
	got, err := Passthrough{}.Resolve(context.Background(), "feed/t1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "feed/t1.jpg", got)
}

func TestS3Signer_PresignsCatalogImages(t *testing.T) {
	_, in := stubAWS(t)
	s := newSigner()
	catalog := feed.NewCatalog(time.Now()).WithObjectImages("feed")

	for _, it := range catalog.Items(models.SourceTwitter) {
		got, err := s.Resolve(context.Background(), it.ImageURL)
		require.NoError(t, err)
		if it.ImageURL == "" {
			assert.Empty(t, got, it.ID)
			continue
		}
		assert.Equal(t, "https://signed/media/feed/"+it.ID+".jpg", got)
		assert.Equal(t, "media", *(*in).Bucket)
	}
}
