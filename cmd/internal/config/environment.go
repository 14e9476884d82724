package config

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const ssmPrefix = "/simpleguide/prod/"

// SSMAPI is the subset of the SSM client used to export production variables.
type SSMAPI interface {
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadEnvironment fills the process environment before Load runs.
// In production (GO_ENV=production) variables come from SSM Parameter Store,
// otherwise from an optional .env file.
func LoadEnvironment(ctx context.Context) error {
	if os.Getenv("GO_ENV") == "production" {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(regionOr("us-east-2")))
		if err != nil {
			return err
		}
		_, err = ExportSSMParameters(ctx, ssm.NewFromConfig(cfg), ssmPrefix)
		return err
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("no .env file found, using process environment")
		return nil
	}
	return err
}

// ExportSSMParameters sets one environment variable per parameter under
// prefix, named after the parameter with the prefix removed.
func ExportSSMParameters(ctx context.Context, client SSMAPI, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	prefixLength := len(prefix)
	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return count, err
		}

		for _, param := range out.Parameters {
			key := aws.ToString(param.Name)[prefixLength:]
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, err
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return count, nil
}

func regionOr(fallback string) string {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return fallback
}
