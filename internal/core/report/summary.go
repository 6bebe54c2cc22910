package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
)

// DefaultSalaryThreshold は集計で使う給与しきい値の既定値です。
const DefaultSalaryThreshold = 5000

// Summary は社員一覧の集計結果です。
type Summary struct {
	Total        int
	Threshold    float64
	AboveCount   int
	MeanSalary   float64
	Roles        []string
	UpperedNames []string
}

// Summarize は threshold を超える給与の人数・平均給与・職種・大文字の氏名を集計します。
func Summarize(employees []employee.Employee, threshold float64) Summary {
	s := Summary{
		Total:        len(employees),
		Threshold:    threshold,
		Roles:        []string{},
		UpperedNames: make([]string, 0, len(employees)),
	}

	seen := make(map[string]struct{})
	var sum float64
	for _, e := range employees {
		sum += e.Salary
		if e.Salary > threshold {
			s.AboveCount++
		}
		if _, ok := seen[e.Role]; !ok {
			seen[e.Role] = struct{}{}
			s.Roles = append(s.Roles, e.Role)
		}
		s.UpperedNames = append(s.UpperedNames, strings.ToUpper(e.Name))
	}

	if s.Total > 0 {
		s.MeanSalary = sum / float64(s.Total)
	}
	return s
}

// WriteText は集計結果をプレーンテキストで書き出します。
func (s Summary) WriteText(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Total employees: %d", s.Total),
		fmt.Sprintf("Salary above %s: %d", FormatCurrency(s.Threshold), s.AboveCount),
		fmt.Sprintf("Mean salary: %s", FormatCurrency(s.MeanSalary)),
		fmt.Sprintf("Roles: %s", strings.Join(s.Roles, ", ")),
		fmt.Sprintf("Names: %s", strings.Join(s.UpperedNames, ", ")),
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("report: write summary: %w", err)
		}
	}
	return nil
}
