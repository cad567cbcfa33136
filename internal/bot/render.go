package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/report"
	"gastos/internal/session"
)

// User-facing strings, Brazilian Portuguese like the bot's audience.
const (
	msgMenu            = "📊 Menu Financeiro:"
	msgInvalidFormat   = "Formato inválido! Use: Descrição Valor (ex.: iFood 19,90)."
	msgNoDraft         = "Erro: Nenhum gasto para categorizar."
	msgNoDraftCard     = "Erro: Nenhum gasto aguardando cartão."
	msgCommitFailed    = "⚠️ Não consegui salvar o gasto agora. Tente novamente."
	msgNoMonths        = "📅 Nenhum lançamento encontrado."
	msgPickStatement   = "📅 Selecione o mês para ver o extrato:"
	msgPickCategory    = "📊 Selecione o mês para ver os gastos por categoria:"
	msgExportUnset     = "📂 Exportação indisponível no momento."
)

func menuKeyboard() [][]Button {
	return [][]Button{
		{{Label: "💰 Ver saldo", Data: tagBalance}},
		{{Label: "📅 Extrato do mês", Data: tagStatementMenu}},
		{{Label: "📈 Gastos por categoria", Data: tagCategoryMenu}},
		{{Label: "📂 Exportar planilha", Data: tagExport}},
	}
}

func categoryKeyboard(categories []string) [][]Button {
	rows := make([][]Button, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []Button{{Label: c, Data: tagCategoryPrefix + c}})
	}
	return rows
}

func paymentKeyboard() [][]Button {
	rows := make([][]Button, 0, 4)
	for _, m := range core.PaymentMethods() {
		rows = append(rows, []Button{{Label: methodLabel(m), Data: tagPaymentPrefix + string(m)}})
	}
	return rows
}

func cardKeyboard(cards []string) [][]Button {
	rows := make([][]Button, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []Button{{Label: c, Data: tagCardPrefix + c}})
	}
	return rows
}

func monthKeyboard(months []core.MonthKey, prefix string) [][]Button {
	rows := make([][]Button, 0, len(months))
	for _, m := range months {
		rows = append(rows, []Button{{Label: m.String(), Data: prefix + m.String()}})
	}
	return rows
}

// methodLabel decorates the stored method value for button display.
func methodLabel(m core.PaymentMethod) string {
	switch m {
	case core.MethodCredit, core.MethodDebit:
		return "💳 " + string(m)
	case core.MethodCash:
		return "💸 " + string(m)
	case core.MethodPix:
		return "⚡ " + string(m)
	}
	return string(m)
}

func categoryQuestion(d session.Draft) string {
	return fmt.Sprintf("Qual a categoria para '%s - R$ %s'?", d.Description, d.Amount)
}

func categoryChosen(category string) string {
	return fmt.Sprintf("✅ Categoria selecionada: %s\nAgora, escolha a forma de pagamento:", category)
}

func cardQuestion(method core.PaymentMethod) string {
	return fmt.Sprintf("💰 Pagamento com %s selecionado.\nAgora, escolha o cartão:", method)
}

func entrySaved(e core.Entry) string {
	return fmt.Sprintf("✅ Gasto registrado com sucesso!\n\n💸 %s - R$ %s\n📂 Categoria: %s\n💳 Pagamento: %s (%s)",
		e.Description, e.Amount, e.Category, e.Method, e.Card)
}

func balanceText(total decimal.Decimal) string {
	return fmt.Sprintf("💰 Saldo atual: R$ %s", formatAmount(total))
}

func statementText(month core.MonthKey, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Extrato de %s:\n", month)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s - %s: R$ %s\n",
			row[core.ColTimestamp], row[core.ColDescription], row[core.ColAmount])
	}
	return b.String()
}

func noStatementText(month core.MonthKey) string {
	return fmt.Sprintf("📅 Nenhum lançamento encontrado para %s.", month)
}

func categoryReportText(month core.MonthKey, totals []report.CategoryTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Gastos por categoria em %s:\n", month)
	for _, ct := range totals {
		fmt.Fprintf(&b, "- %s: R$ %s\n", ct.Category, formatAmount(ct.Total))
	}
	return b.String()
}

func noCategoryDataText(month core.MonthKey) string {
	return fmt.Sprintf("📊 Nenhum gasto registrado para %s.", month)
}

func exportText(url string) string {
	return "📂 Planilha: " + url
}

// formatAmount renders decimals with two places and a comma separator, the
// same shape users type.
func formatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
