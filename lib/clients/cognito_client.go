package clients

import (
	"context"
	"minecomply/lib/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// NewCognitoClient creates a Cognito user pool client for the app client
// sign-in flows. InitiateAuth on a public app client needs no AWS credentials.
func NewCognitoClient(ctx context.Context, isLocal bool, region string) (*cognitoidentityprovider.Client, error) {
	cfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return cognitoidentityprovider.NewFromConfig(cfg, func(o *cognitoidentityprovider.Options) {
		if isLocal {
			o.BaseEndpoint = aws.String(constants.LOCALSTACK_ENDPOINT)
		}
	}), nil
}
