package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/BielosX/wombat/poke-search/src/config"
	"github.com/BielosX/wombat/poke-search/src/s3"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
)

var ErrNoBucket = errors.New("BUCKET_NAME is not set")

// NewFromConfig builds an Archiver uploading to the configured S3 bucket with
// the default AWS credential chain.
func NewFromConfig(ctx context.Context, cfg config.Config, source Source, sugar *zap.SugaredLogger) (*Archiver, error) {
	if cfg.BucketName == "" {
		return nil, ErrNoBucket
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewArchiver(source, s3.NewClient(awsCfg), cfg.BucketName, cfg.ArchivePrefix, sugar), nil
}
