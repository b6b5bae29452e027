package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogify/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
	Bucket    string
}

// SpacesClient archives finished posts to an S3-compatible bucket.
type SpacesClient struct {
	client *s3.Client
	bucket string
}

func NewSpacesClient(cfg SpacesConfig) (*SpacesClient, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.Endpoint,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &SpacesClient{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// ArchivePost stores the post together with its source transcript under
// posts/<id>.json.
func (s *SpacesClient) ArchivePost(ctx context.Context, post *models.BlogPost, transcript string) error {
	data := struct {
		ID          string    `json:"id"`
		SourceLink  string    `json:"source_link"`
		SourceTitle string    `json:"source_title"`
		Content     string    `json:"content"`
		Transcript  string    `json:"transcript"`
		ArchivedAt  time.Time `json:"archived_at"`
	}{
		ID:          post.ID,
		SourceLink:  post.SourceLink,
		SourceTitle: post.SourceTitle,
		Content:     post.GeneratedContent,
		Transcript:  transcript,
		ArchivedAt:  time.Now().UTC(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %v", err)
	}

	key := fmt.Sprintf("posts/%s.json", post.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to save to Spaces: %v", err)
	}

	return nil
}
