package clients

import (
	"context"
	"fmt"
	"minecomply/lib/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// NewSSMClient creates a Parameter Store client; isLocal points it at LocalStack
func NewSSMClient(ctx context.Context, isLocal bool, region string) (*ssm.Client, error) {
	cfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return ssm.NewFromConfig(cfg, func(o *ssm.Options) {
		if isLocal {
			o.BaseEndpoint = aws.String(constants.LOCALSTACK_ENDPOINT)
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		region = constants.DEFAULT_REGION
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cfg, nil
}
