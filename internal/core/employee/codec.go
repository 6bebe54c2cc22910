package employee

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// record は保存形式の 1 件分です。フィールド名は既存データと互換です。
type record struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	CPF    string  `json:"cpf"`
	Birth  string  `json:"birth"`
	Role   string  `json:"role"`
	Salary float64 `json:"salary"`
}

// Encode は一覧を JSON 配列にシリアライズします。
func Encode(employees []Employee) (string, error) {
	records := make([]record, 0, len(employees))
	for _, e := range employees {
		records = append(records, toRecord(e))
	}

	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("employee: encode collection: %w", err)
	}
	return string(b), nil
}

// Decode は保存値を一覧に戻します。形式が不正な場合は ErrStorageDecode を返します。
func Decode(raw string) ([]Employee, error) {
	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageDecode, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not an array", ErrStorageDecode)
	}

	employees := make([]Employee, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrStorageDecode, i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrStorageDecode, r.ID)
		}
		seen[r.ID] = struct{}{}

		if r.Salary < 0 || math.IsNaN(r.Salary) || math.IsInf(r.Salary, 0) {
			return nil, fmt.Errorf("%w: record %q has invalid salary", ErrStorageDecode, r.ID)
		}

		var birth time.Time
		if r.Birth != "" {
			parsed, err := time.Parse(DateLayout, r.Birth)
			if err != nil {
				return nil, fmt.Errorf("%w: record %q birth: %v", ErrStorageDecode, r.ID, err)
			}
			birth = parsed
		}

		employees = append(employees, Employee{
			ID:        r.ID,
			Name:      r.Name,
			CPF:       r.CPF,
			BirthDate: birth,
			Role:      r.Role,
			Salary:    r.Salary,
		})
	}

	return employees, nil
}

func toRecord(e Employee) record {
	birth := ""
	if !e.BirthDate.IsZero() {
		birth = e.BirthDate.Format(DateLayout)
	}
	return record{
		ID:     e.ID,
		Name:   e.Name,
		CPF:    e.CPF,
		Birth:  birth,
		Role:   e.Role,
		Salary: e.Salary,
	}
}
