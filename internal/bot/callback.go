package bot

import "strings"

// Action identifies what a button payload asks for. Tags encode action and
// value as a string prefix on the wire ("cat_Transporte"); they are decoded
// once here instead of string-matched inside every handler.
type Action int

const (
	ActionUnknown Action = iota
	ActionCategory
	ActionPayment
	ActionCard
	ActionBalance
	ActionStatementMenu
	ActionCategoryMenu
	ActionExport
	ActionStatementMonth
	ActionCategoryMonth
)

// Callback is a decoded button payload.
type Callback struct {
	Action Action
	Value  string
}

// Tag prefixes and menu tags, fixed by the button contract.
const (
	tagCategoryPrefix       = "cat_"
	tagPaymentPrefix        = "pag_"
	tagCardPrefix           = "cart_"
	tagStatementMonthPrefix = "extrato_mes_"
	tagCategoryMonthPrefix  = "categoria_mes_"

	tagBalance       = "saldo"
	tagStatementMenu = "extrato"
	tagCategoryMenu  = "categoria"
	tagExport        = "exportar"
)

// ParseCallback decodes a raw button tag. Longer prefixes are checked first
// so "categoria_mes_05/2024" does not match the bare "categoria" menu tag.
func ParseCallback(data string) Callback {
	switch {
	case strings.HasPrefix(data, tagStatementMonthPrefix):
		return Callback{Action: ActionStatementMonth, Value: data[len(tagStatementMonthPrefix):]}
	case strings.HasPrefix(data, tagCategoryMonthPrefix):
		return Callback{Action: ActionCategoryMonth, Value: data[len(tagCategoryMonthPrefix):]}
	case strings.HasPrefix(data, tagCategoryPrefix):
		return Callback{Action: ActionCategory, Value: data[len(tagCategoryPrefix):]}
	case strings.HasPrefix(data, tagPaymentPrefix):
		return Callback{Action: ActionPayment, Value: data[len(tagPaymentPrefix):]}
	case strings.HasPrefix(data, tagCardPrefix):
		return Callback{Action: ActionCard, Value: data[len(tagCardPrefix):]}
	case data == tagBalance:
		return Callback{Action: ActionBalance}
	case data == tagStatementMenu:
		return Callback{Action: ActionStatementMenu}
	case data == tagCategoryMenu:
		return Callback{Action: ActionCategoryMenu}
	case data == tagExport:
		return Callback{Action: ActionExport}
	}
	return Callback{Action: ActionUnknown, Value: data}
}
