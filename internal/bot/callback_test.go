package bot

import "testing"

func TestParseCallback(t *testing.T) {
	cases := []struct {
		data   string
		action Action
		value  string
	}{
		{"cat_Transporte", ActionCategory, "Transporte"},
		{"pag_PIX", ActionPayment, "PIX"},
		{"pag_Crédito", ActionPayment, "Crédito"},
		{"cart_Nubank", ActionCard, "Nubank"},
		{"saldo", ActionBalance, ""},
		{"extrato", ActionStatementMenu, ""},
		{"categoria", ActionCategoryMenu, ""},
		{"exportar", ActionExport, ""},
		{"extrato_mes_05/2024", ActionStatementMonth, "05/2024"},
		{"categoria_mes_01/2025", ActionCategoryMonth, "01/2025"},
		{"garbage", ActionUnknown, "garbage"},
		{"", ActionUnknown, ""},
	}
	for _, tc := range cases {
		got := ParseCallback(tc.data)
		if got.Action != tc.action || got.Value != tc.value {
			t.Errorf("ParseCallback(%q) = %+v, want {%v %q}", tc.data, got, tc.action, tc.value)
		}
	}
}
