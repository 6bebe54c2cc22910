package employee

import "time"

// DateLayout は生年月日の入出力に使う日付形式です。
const DateLayout = "2006-01-02"

// Employee は社員エンティティです。値として扱い、更新は With で新しい値を作ります。
type Employee struct {
	ID        string
	Name      string
	CPF       string
	BirthDate time.Time
	Role      string
	Salary    float64
}

// Fields は作成・更新時に受け付ける可変項目です。
type Fields struct {
	Name      string
	CPF       string
	BirthDate string
	Role      string
	Salary    float64
}

// with は ID を保ったまま可変項目を置き換えた新しい社員を返します。
func (e Employee) with(f validFields) Employee {
	return Employee{
		ID:        e.ID,
		Name:      f.name,
		CPF:       f.cpf,
		BirthDate: f.birthDate,
		Role:      f.role,
		Salary:    f.salary,
	}
}

// FieldsOf は編集フォームへ流し込むための Fields を返します。
func FieldsOf(e Employee) Fields {
	birth := ""
	if !e.BirthDate.IsZero() {
		birth = e.BirthDate.Format(DateLayout)
	}
	return Fields{
		Name:      e.Name,
		CPF:       e.CPF,
		BirthDate: birth,
		Role:      e.Role,
		Salary:    e.Salary,
	}
}

type validFields struct {
	name      string
	cpf       string
	birthDate time.Time
	role      string
	salary    float64
}
