package awsconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
)

func TestLoad_StaticCredentialsAndEndpoint(t *testing.T) {
	t.Parallel()

	cfg, err := Load(context.Background(), config.AWSConfig{
		Region:          "sa-east-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Region != "sa-east-1" {
		t.Errorf("unexpected region %s", cfg.Region)
	}
	if aws.ToString(cfg.BaseEndpoint) != "http://localhost:4566" {
		t.Errorf("unexpected endpoint %v", aws.ToString(cfg.BaseEndpoint))
	}

	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if creds.AccessKeyID != "test" {
		t.Errorf("unexpected access key %s", creds.AccessKeyID)
	}
}
