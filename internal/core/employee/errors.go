package employee

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation は入力値検証エラー全般を表します。個別のエラーはこれをラップします。
	ErrValidation = errors.New("employee: validation failed")

	ErrInvalidID        = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidName      = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidRole      = fmt.Errorf("%w: role is required", ErrValidation)
	ErrInvalidCPF       = fmt.Errorf("%w: cpf must have 11 digits", ErrValidation)
	ErrInvalidBirthDate = fmt.Errorf("%w: invalid birth date", ErrValidation)
	ErrInvalidSalary    = fmt.Errorf("%w: salary must be a non-negative number", ErrValidation)

	ErrEmployeeNotFound = errors.New("employee: not found")

	// ErrStorageDecode は保存値が壊れていたことを表します。Load では空の一覧に置き換えられます。
	ErrStorageDecode = errors.New("employee: stored collection is malformed")
)
