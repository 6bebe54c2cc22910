package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const csvContentType = "text/csv; charset=utf-8"

// API は Archive が利用する S3 クライアントの操作です。
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive は S3 バケットにレポートを保存します。
type Archive struct {
	client API
	bucket string
	prefix string
}

// NewArchive は Archive を生成します。
func NewArchive(client API, bucket, prefix string) *Archive {
	return &Archive{client: client, bucket: bucket, prefix: prefix}
}

// NewArchiveFromConfig は aws.Config から S3 クライアントを作成して Archive を返します。
func NewArchiveFromConfig(cfg aws.Config, bucket, prefix string, usePathStyle bool) *Archive {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})
	return NewArchive(client, bucket, prefix)
}

// Save は prefix/name のキーでオブジェクトを保存し、s3:// 形式の場所を返します。
func (a *Archive) Save(ctx context.Context, name string, body []byte) (string, error) {
	key := name
	if a.prefix != "" {
		key = path.Join(a.prefix, name)
	}

	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(csvContentType),
	}); err != nil {
		return "", fmt.Errorf("s3 archive: put %s/%s: %w", a.bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
