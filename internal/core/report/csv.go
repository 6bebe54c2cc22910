package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
)

// ErrNoEmployees は出力対象の社員がいないことを表します。
var ErrNoEmployees = errors.New("report: no employees registered")

// Header は CSV レポートの固定ヘッダーです。
var Header = []string{"Nome", "CPF", "Data Nasc", "Cargo", "Salario"}

// FileName は now の日付を使ったレポートのファイル名を返します。
func FileName(now time.Time) string {
	return fmt.Sprintf("relatorio-%s.csv", now.Format("2006-01-02"))
}

// WriteCSV は ';' 区切りで 1 行 1 社員のレポートを書き出します。
func WriteCSV(w io.Writer, employees []employee.Employee) error {
	if len(employees) == 0 {
		return ErrNoEmployees
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, e := range employees {
		row := []string{
			e.Name,
			e.CPF,
			FormatDate(e.BirthDate),
			e.Role,
			strconv.FormatFloat(e.Salary, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write row %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// CSV は WriteCSV の結果をバイト列で返します。
func CSV(employees []employee.Employee) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, employees); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
