package publish

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"

	"github.com/vango-dev/hatch/internal/errors"
)

// credentialsEnv holds the standard AWS environment variables.
type credentialsEnv struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
	Region          string `env:"AWS_REGION"`
	Endpoint        string `env:"AWS_ENDPOINT_URL_S3"`
}

// NewS3Client creates an S3 client from AWS_* environment variables.
// region overrides AWS_REGION when set. AWS_ENDPOINT_URL_S3 selects an
// S3-compatible endpoint and switches to path-style addressing.
func NewS3Client(region string) (*s3.Client, error) {
	var ce credentialsEnv
	if err := env.Parse(&ce); err != nil {
		return nil, errors.New("E203").Wrap(err)
	}
	if region == "" {
		region = ce.Region
	}
	if region == "" {
		return nil, errors.New("E203").
			WithDetail("No AWS region configured.").
			WithSuggestion("Set publish.region in hatch.json or AWS_REGION")
	}
	if ce.AccessKeyID == "" || ce.SecretAccessKey == "" {
		return nil, errors.New("E203").
			WithDetail("No AWS credentials found.").
			WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}

	opts := s3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     ce.AccessKeyID,
				SecretAccessKey: ce.SecretAccessKey,
				SessionToken:    ce.SessionToken,
				Source:          "Environment",
			}, nil
		}),
	}
	if ce.Endpoint != "" {
		opts.BaseEndpoint = aws.String(ce.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts), nil
}
