package export

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubS3(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})
}

func testS3Config() S3Config {
	return S3Config{
		Bucket:       "voyages",
		Prefix:       "logs",
		Region:       "eu-north-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	}
}

func TestS3Sink_Put(t *testing.T) {
	stubS3(t)

	loads := 0
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		loads++
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-north-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	var got *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		body = b
		return &s3.PutObjectOutput{}, nil
	}

	sink := NewS3Sink(testS3Config())
	loc, err := sink.Put(context.Background(), "USS Nott - 3rd Voyage Log.pdf", ContentTypePDF, []byte("%PDF"))
	require.NoError(t, err)
	_, err = sink.Put(context.Background(), "second.png", ContentTypePNG, []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, 1, loads, "client is built once")
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	assert.Equal(t, "s3://voyages/logs/USS Nott - 3rd Voyage Log.pdf", loc)
	assert.Equal(t, "voyages", aws.ToString(got.Bucket))
	assert.Equal(t, "logs/second.png", aws.ToString(got.Key))
	assert.Equal(t, ContentTypePNG, aws.ToString(got.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(got.ContentLength))
	assert.Equal(t, "png", string(body))
}

func TestS3Sink_AWSDefaults(t *testing.T) {
	stubS3(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Nil(t, lo.Credentials)
		return aws.Config{}, nil
	}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}

	sink := NewS3Sink(S3Config{Bucket: "b", Region: "us-east-1"})
	loc, err := sink.Put(context.Background(), "x.png", ContentTypePNG, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://b/x.png", loc)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestS3Sink_Errors(t *testing.T) {
	stubS3(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3Sink(testS3Config()).Put(context.Background(), "x.png", ContentTypePNG, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config")

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	denied := errors.New("access denied")
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, denied
	}

	_, err = NewS3Sink(testS3Config()).Put(context.Background(), "x.png", ContentTypePNG, nil)
	assert.ErrorIs(t, err, denied)
	assert.Contains(t, err.Error(), "failed to upload object[logs/x.png]")
}
