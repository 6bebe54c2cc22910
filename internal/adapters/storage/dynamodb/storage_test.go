package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeAPI struct {
	items   map[string]map[string]types.AttributeValue
	getErr  error
	lastGet *dynamodb.GetItemInput
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGet = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	key := in.Key["key"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[key]}, nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	key := in.Item["key"].(*types.AttributeValueMemberS).Value
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestStorage_GetSet(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	s := NewStorage(api, "registry_kv")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	ctx := context.Background()
	if _, found, err := s.Get(ctx, "employees_v1"); err != nil || found {
		t.Fatalf("expected missing key, got found=%t err=%v", found, err)
	}
	if !aws.ToBool(api.lastGet.ConsistentRead) {
		t.Fatal("expected consistent read")
	}
	if aws.ToString(api.lastGet.TableName) != "registry_kv" {
		t.Fatalf("unexpected table %s", aws.ToString(api.lastGet.TableName))
	}

	if err := s.Set(ctx, "employees_v1", `[]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	stored := api.items["employees_v1"]
	if got := stored["updatedAt"].(*types.AttributeValueMemberS).Value; got != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected updatedAt %s", got)
	}

	v, found, err := s.Get(ctx, "employees_v1")
	if err != nil || !found || v != "[]" {
		t.Fatalf("unexpected get result value=%q found=%t err=%v", v, found, err)
	}
}

func TestStorage_GetError(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.getErr = errors.New("throttled")

	if _, _, err := NewStorage(api, "registry_kv").Get(context.Background(), "k"); !errors.Is(err, api.getErr) {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
}
