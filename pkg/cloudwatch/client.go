package cloudwatch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

const defaultRegion = "us-east-1"

// Options configures the CloudWatch Logs client. Zero values fall back to
// the default credential chain, the default region and the public endpoint.
type Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// NewClient builds a CloudWatch Logs client. Explicit key flags take
// precedence; otherwise the usual environment/profile chain applies.
func NewClient(ctx context.Context, opts Options) (*cloudwatchlogs.Client, error) {
	region := opts.Region
	if region == "" {
		region = defaultRegion
	}

	if opts.AccessKeyID != "" || opts.SecretAccessKey != "" {
		cfg := aws.NewConfig()
		cfg.Region = region
		if opts.Endpoint != "" {
			cfg.BaseEndpoint = &opts.Endpoint
		}
		cfg.Credentials = credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     opts.AccessKeyID,
				SecretAccessKey: opts.SecretAccessKey,
				SessionToken:    opts.SessionToken,
			},
		}
		return cloudwatchlogs.NewFromConfig(*cfg), nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.BaseEndpoint = &opts.Endpoint
	}
	return cloudwatchlogs.NewFromConfig(cfg), nil
}
