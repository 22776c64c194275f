package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Disk stores files in an S3-compatible bucket. Works with AWS S3 and
// with MinIO / R2 / Spaces via S3_ENDPOINT + path-style addressing.
type s3Disk struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// S3Options configures the s3 driver.
type S3Options struct {
	Key      string
	Secret   string
	Region   string
	Bucket   string
	Endpoint string // optional, for S3-compatible services
	BaseURL  string // public URL prefix; derived from bucket/region when empty
}

// NewS3 returns a Disk backed by an S3 bucket.
func NewS3(opts S3Options) (Disk, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Key != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.Key, opts.Secret, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := opts.BaseURL
	if baseURL == "" {
		if opts.Endpoint != "" {
			baseURL = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
	}

	return &s3Disk{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (d *s3Disk) key(path string) string {
	return strings.TrimLeft(path, "/")
}

func (d *s3Disk) Put(path string, content []byte) error {
	return d.PutStream(path, bytes.NewReader(content))
}

func (d *s3Disk) PutStream(path string, r io.Reader) error {
	_, err := d.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("storage: s3 put %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) Get(path string) ([]byte, error) {
	rc, err := d.GetStream(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("storage: s3 read %s: %w", path, err)
	}
	return b, nil
}

func (d *s3Disk) GetStream(path string) (io.ReadCloser, error) {
	out, err := d.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: s3 get %s: %w", path, err)
	}
	return out.Body, nil
}

func (d *s3Disk) Exists(path string) bool {
	_, err := d.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
	})
	return err == nil
}

func (d *s3Disk) Delete(path string) error {
	_, err := d.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(path)),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 delete %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) URL(path string) string {
	return d.baseURL + "/" + d.key(path)
}

func (d *s3Disk) Files(directory string) ([]string, error) {
	prefix := strings.Trim(directory, "/")
	if prefix != "" {
		prefix += "/"
	}

	var out []string
	p := s3.NewListObjectsV2Paginator(d.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(d.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(context.Background())
		if err != nil {
			return nil, fmt.Errorf("storage: s3 list %s: %w", directory, err)
		}
		for _, obj := range page.Contents {
			out = append(out, aws.ToString(obj.Key))
		}
	}
	return out, nil
}
