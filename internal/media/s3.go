package media

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads media to an S3 bucket and records the object URL as a
// filesystem-style ref. Serving endpoints redirect to the URL instead of
// streaming the bytes.
type S3Store struct {
	sess          *session.Session
	bucket        string
	region        string
	cloudFrontURL string
}

func NewS3Store(bucket, region, cloudFrontURL string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &S3Store{
		sess:          sess,
		bucket:        bucket,
		region:        region,
		cloudFrontURL: cloudFrontURL,
	}, nil
}

func (s *S3Store) Save(payload []byte, filename, contentType string) (AssetRef, error) {
	key := fmt.Sprintf("%s/%s_%s",
		time.Now().Format("2006/01"),
		uuid.New().String(),
		SanitizeFilename(filename),
	)

	svc := s3.New(s.sess)
	_, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return AssetRef{}, err
	}

	return AssetRef{Kind: FilePath, Path: s.urlFor(key)}, nil
}

func (s *S3Store) Delete(ref AssetRef) error {
	if ref.Kind != FilePath || !ref.IsRemote() {
		return nil
	}

	svc := s3.New(s.sess)
	_, err := svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyFromURL(ref.Path)),
	})
	return err
}

func (s *S3Store) urlFor(key string) string {
	if s.cloudFrontURL != "" {
		return strings.TrimRight(s.cloudFrontURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) keyFromURL(url string) string {
	if s.cloudFrontURL != "" {
		if rest, ok := strings.CutPrefix(url, strings.TrimRight(s.cloudFrontURL, "/")+"/"); ok {
			return rest
		}
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}
