package employee

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は社員台帳ユースケースの公開インターフェースです。
type UseCase interface {
	Refresh(ctx context.Context) (LoadResult, error)
	List(ctx context.Context, query string) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, f Fields) (Employee, error)
	Update(ctx context.Context, id string, f Fields) (Employee, error)
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) ([]Employee, error)
}

// Service はメモリ上の社員一覧を所有し、変更のたびに Store へ書き戻します。
type Service struct {
	store  *Store
	tx     TransactionManager
	ids    IDSource
	logger zerolog.Logger

	mu        sync.Mutex
	employees []Employee
	loaded    bool
}

var _ UseCase = (*Service)(nil)

// NewService は Service を生成します。tx が nil の場合はトランザクションなしで動作します。
func NewService(store *Store, tx TransactionManager, logger zerolog.Logger) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{
		store:  store,
		tx:     tx,
		ids:    NewIDCandidate,
		logger: logger.With().Str("component", "employee").Str("key", store.Key()).Logger(),
	}
}

// Refresh は保存値から一覧を読み直します。
func (s *Service) Refresh(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result LoadResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		loaded, err := s.load(txCtx)
		if err != nil {
			return err
		}
		result = loaded
		return nil
	}); err != nil {
		return LoadResult{}, err
	}

	s.employees = result.Employees
	s.loaded = true
	s.logger.Info().Str("state", result.State.String()).Int("count", len(result.Employees)).Msg("collection loaded")
	return result, nil
}

// List は query で絞り込んだ社員を登録順に返します。
func (s *Service) List(ctx context.Context, query string) ([]Employee, error) {
	employees, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := slices.Collect(Filter(employees, query))
	if out == nil {
		out = []Employee{}
	}
	return out, nil
}

// Get は id の社員を返します。
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	if strings.TrimSpace(id) == "" {
		return Employee{}, ErrInvalidID
	}
	employees, err := s.current(ctx)
	if err != nil {
		return Employee{}, err
	}
	e, ok := Find(employees, id)
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}

// Snapshot は一覧全体のコピーを返します。
func (s *Service) Snapshot(ctx context.Context) ([]Employee, error) {
	employees, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(employees), nil
}

// Create は新しい社員を登録します。
func (s *Service) Create(ctx context.Context, f Fields) (Employee, error) {
	var created Employee
	err := s.mutate(ctx, func(employees []Employee) ([]Employee, error) {
		next, e, err := Create(employees, f, s.ids)
		if err != nil {
			return nil, err
		}
		created = e
		return next, nil
	})
	if err != nil {
		return Employee{}, err
	}

	s.logger.Info().Str("id", created.ID).Msg("employee created")
	return created, nil
}

// Update は id の社員を更新します。
func (s *Service) Update(ctx context.Context, id string, f Fields) (Employee, error) {
	var updated Employee
	err := s.mutate(ctx, func(employees []Employee) ([]Employee, error) {
		next, e, err := Update(employees, id, f)
		if err != nil {
			return nil, err
		}
		updated = e
		return next, nil
	})
	if err != nil {
		return Employee{}, err
	}

	s.logger.Info().Str("id", updated.ID).Msg("employee updated")
	return updated, nil
}

// Delete は id の社員を削除します。確認は呼び出し側の責務で、存在しない id はエラーになりません。
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}

	removed := false
	err := s.mutate(ctx, func(employees []Employee) ([]Employee, error) {
		next := Remove(employees, id)
		removed = len(next) != len(employees)
		return next, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Bool("removed", removed).Msg("employee deleted")
	return nil
}

func (s *Service) mutate(ctx context.Context, fn func([]Employee) ([]Employee, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		loaded, err := s.load(txCtx)
		if err != nil {
			return err
		}
		result, err := fn(loaded.Employees)
		if err != nil {
			return err
		}

		if err := s.store.Persist(txCtx, result); err != nil {
			return err
		}
		next = result
		return nil
	}); err != nil {
		return err
	}

	s.employees = next
	s.loaded = true
	return nil
}

func (s *Service) current(ctx context.Context) ([]Employee, error) {
	s.mu.Lock()
	loaded := s.loaded
	employees := s.employees
	s.mu.Unlock()

	if loaded {
		return employees, nil
	}

	result, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return result.Employees, nil
}

func (s *Service) load(ctx context.Context) (LoadResult, error) {
	result, err := s.store.Load(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	if result.State == LoadCorrupt {
		s.logger.Warn().Err(result.Err).Msg("stored collection is malformed, using empty collection")
	}
	return result, nil
}
