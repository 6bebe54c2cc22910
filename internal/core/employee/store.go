package employee

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var cpfPattern = regexp.MustCompile(`^[0-9]{11}$`)

// IDSource は識別子の候補を 1 つ返します。
type IDSource func() string

// NewIDCandidate は時刻順の UUIDv7 (タイムスタンプ + 乱数) を候補として返します。
func NewIDCandidate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GenerateID は employees のどの ID とも重複しない識別子を返します。
// 候補が衝突した場合は引き直します。
func GenerateID(employees []Employee, next IDSource) string {
	if next == nil {
		next = NewIDCandidate
	}

	taken := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		taken[e.ID] = struct{}{}
	}

	for {
		id := next()
		if id == "" {
			continue
		}
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// Create は検証済みの新しい社員を末尾に追加した一覧を返します。
// 入力の一覧は変更しません。
func Create(employees []Employee, f Fields, next IDSource) ([]Employee, Employee, error) {
	valid, err := validateFields(f)
	if err != nil {
		return employees, Employee{}, err
	}

	created := Employee{ID: GenerateID(employees, next)}.with(valid)

	out := make([]Employee, 0, len(employees)+1)
	out = append(out, employees...)
	out = append(out, created)
	return out, created, nil
}

// Update は id の社員の可変項目を置き換えた一覧を返します。位置と ID は保たれます。
func Update(employees []Employee, id string, f Fields) ([]Employee, Employee, error) {
	if strings.TrimSpace(id) == "" {
		return employees, Employee{}, fmt.Errorf("id: %w", ErrInvalidID)
	}

	valid, err := validateFields(f)
	if err != nil {
		return employees, Employee{}, err
	}

	idx := slices.IndexFunc(employees, func(e Employee) bool { return e.ID == id })
	if idx < 0 {
		return employees, Employee{}, ErrEmployeeNotFound
	}

	out := slices.Clone(employees)
	out[idx] = out[idx].with(valid)
	return out, out[idx], nil
}

// Remove は id の社員を除いた一覧を返します。存在しない id は何もしません。
func Remove(employees []Employee, id string) []Employee {
	if !slices.ContainsFunc(employees, func(e Employee) bool { return e.ID == id }) {
		return employees
	}
	return slices.DeleteFunc(slices.Clone(employees), func(e Employee) bool { return e.ID == id })
}

// Find は id の社員を返します。
func Find(employees []Employee, id string) (Employee, bool) {
	idx := slices.IndexFunc(employees, func(e Employee) bool { return e.ID == id })
	if idx < 0 {
		return Employee{}, false
	}
	return employees[idx], true
}

// Filter は氏名・CPF・職種のいずれかに query を大文字小文字を区別せず含む社員を順に返します。
// 空白のみの query は全件を返します。
func Filter(employees []Employee, query string) iter.Seq[Employee] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(Employee) bool) {
		for _, e := range employees {
			if q != "" && !matches(e, q) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func matches(e Employee, q string) bool {
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.CPF), q) ||
		strings.Contains(strings.ToLower(e.Role), q)
}

func validateFields(f Fields) (validFields, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return validFields{}, ErrInvalidName
	}

	role := strings.TrimSpace(f.Role)
	if role == "" {
		return validFields{}, ErrInvalidRole
	}

	cpf := strings.TrimSpace(f.CPF)
	if !cpfPattern.MatchString(cpf) {
		return validFields{}, ErrInvalidCPF
	}

	rawBirth := strings.TrimSpace(f.BirthDate)
	if rawBirth == "" {
		return validFields{}, ErrInvalidBirthDate
	}
	birth, err := time.Parse(DateLayout, rawBirth)
	if err != nil {
		return validFields{}, ErrInvalidBirthDate
	}

	if f.Salary < 0 || math.IsNaN(f.Salary) || math.IsInf(f.Salary, 0) {
		return validFields{}, ErrInvalidSalary
	}

	return validFields{
		name:      name,
		cpf:       cpf,
		birthDate: birth,
		role:      role,
		salary:    f.Salary,
	}, nil
}

// LoadState は Load の結果種別です。
type LoadState int

const (
	LoadAbsent LoadState = iota
	LoadCorrupt
	LoadOK
)

func (s LoadState) String() string {
	switch s {
	case LoadAbsent:
		return "absent"
	case LoadCorrupt:
		return "corrupt"
	case LoadOK:
		return "loaded"
	default:
		return "unknown"
	}
}

// LoadResult は保存値の読み込み結果です。Corrupt の場合 Err に ErrStorageDecode が入ります。
type LoadResult struct {
	Employees []Employee
	State     LoadState
	Err       error
}

// Store は固定キーで社員一覧を読み書きします。
type Store struct {
	storage Storage
	key     string
}

// NewStore は Store を生成します。key が空なら DefaultStorageKey を使います。
func NewStore(storage Storage, key string) *Store {
	if strings.TrimSpace(key) == "" {
		key = DefaultStorageKey
	}
	return &Store{storage: storage, key: key}
}

// Key は保存キーを返します。
func (s *Store) Key() string {
	return s.key
}

// Load は保存された一覧を返します。値が無い・壊れている場合は空の一覧になり、エラーにはなりません。
// ストレージ自体の障害のみエラーとして返します。
func (s *Store) Load(ctx context.Context) (LoadResult, error) {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return LoadResult{}, fmt.Errorf("employee: load %s: %w", s.key, err)
	}
	if !found || raw == "" {
		return LoadResult{Employees: []Employee{}, State: LoadAbsent}, nil
	}

	employees, err := Decode(raw)
	if err != nil {
		if errors.Is(err, ErrStorageDecode) {
			return LoadResult{Employees: []Employee{}, State: LoadCorrupt, Err: err}, nil
		}
		return LoadResult{}, err
	}

	return LoadResult{Employees: employees, State: LoadOK}, nil
}

// Persist は一覧全体をシリアライズして保存値を上書きします。
func (s *Store) Persist(ctx context.Context, employees []Employee) error {
	raw, err := Encode(employees)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("employee: persist %s: %w", s.key, err)
	}
	return nil
}
