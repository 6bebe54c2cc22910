package employee

import "context"

// DefaultStorageKey は社員一覧を保存するキーの既定値です。
const DefaultStorageKey = "employees_v1"

// Storage は社員一覧を文字列として保存するキーバリューストアの抽象です。
type Storage interface {
	// Get は key の値を返します。存在しない場合 found は false です。
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
