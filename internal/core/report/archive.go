package report

import "context"

// Archive は生成したレポートを保存する先の抽象です。
type Archive interface {
	// Save は body を name で保存し、保存先の場所を返します。
	Save(ctx context.Context, name string, body []byte) (string, error)
}
