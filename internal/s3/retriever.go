// Package s3 retrieves resource content from S3 objects addressed as s3://bucket/key.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// ErrInvalidAddress is returned for addresses that do not name a bucket and key.
var ErrInvalidAddress = errors.New("invalid s3 address")

// Retriever downloads whole objects into memory.
type Retriever struct {
	downloader s3manageriface.DownloaderAPI
}

// New creates a Retriever from the default AWS session (environment,
// shared config and instance credentials).
func New() (*Retriever, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewRetriever(s3manager.NewDownloader(sess)), nil
}

func NewRetriever(downloader s3manageriface.DownloaderAPI) *Retriever {
	return &Retriever{downloader: downloader}
}

// ParseAddress splits s3://bucket/key into bucket and key.
func ParseAddress(address string) (bucket, key string, err error) {
	if !strings.HasPrefix(strings.ToLower(address), "s3://") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	splitedPath := strings.SplitN(address[len("s3://"):], "/", 2)
	if len(splitedPath) != 2 || splitedPath[0] == "" || splitedPath[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	return splitedPath[0], splitedPath[1], nil
}

// Retrieve downloads the object named by address. AWS request failures are
// returned unwrapped from the SDK, so their status code stays reachable.
func (r *Retriever) Retrieve(ctx context.Context, address string) ([]byte, error) {
	bucket, key, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	buf := aws.NewWriteAtBuffer(nil)
	if _, err := r.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("download %s: %w", address, err)
	}
	return buf.Bytes(), nil
}
