package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const displayDateLayout = "02/01/2006"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency は金額を pt-BR の BRL 表記 (例: R$ 4.000,00) に整形します。
func FormatCurrency(v float64) string {
	return "R$ " + printer.Sprintf("%.2f", v)
}

// FormatDate は日付を DD/MM/YYYY に整形します。ゼロ値は空文字列です。
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}
