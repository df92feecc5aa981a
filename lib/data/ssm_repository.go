package data

import (
	"context"
	"minecomply/lib/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/sirupsen/logrus"
)

// SSMRepository reads the client's deployment parameters from Parameter Store
type SSMRepository interface {
	GetParameters(ctx context.Context) (map[string]string, error)
}

type SSMClientInterface interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

type SSMDao struct {
	SSM    SSMClientInterface
	Path   string
	Logger *logrus.Logger
}

// GetParameters returns every parameter under Path (default /minecomply),
// following NextToken until the listing is exhausted.
func (dao *SSMDao) GetParameters(ctx context.Context) (map[string]string, error) {
	path := dao.Path
	if path == "" {
		path = constants.SSM_PARAMETER_PATH
	}

	params := map[string]string{}
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	for {
		output, err := dao.SSM.GetParametersByPath(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, param := range output.Parameters {
			params[aws.ToString(param.Name)] = aws.ToString(param.Value)
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	if dao.Logger != nil {
		dao.Logger.WithFields(logrus.Fields{
			"path":         path,
			"params_count": len(params),
			"operation":    "GetParameters",
		}).Debug("Retrieved SSM parameters")
	}
	return params, nil
}
