package core

import "fmt"

// FormatYuan renders an amount as a currency string, e.g. "¥42.50".
// Negative amounts render as "-¥42.50".
func FormatYuan(m Money) string {
	if m.Cents < 0 {
		return "-¥" + fmt.Sprintf("%.2f", m.Neg().Float64())
	}
	return "¥" + fmt.Sprintf("%.2f", m.Float64())
}

// FormatSignedYuan renders a balance with an explicit sign, e.g.
// "+¥100.00" or "-¥42.50". Zero renders as positive.
func FormatSignedYuan(m Money) string {
	if m.Cents < 0 {
		return FormatYuan(m)
	}
	return "+" + FormatYuan(m)
}

// TypeLabel returns the display label for a record type.
func TypeLabel(t RecordType) string {
	if t == Income {
		return "收入"
	}
	return "支出"
}

const fallbackIcon = "📌"

var categoryIcons = map[string]string{
	"餐饮": "🍽️",
	"交通": "🚗",
	"购物": "🛍️",
	"娱乐": "🎮",
	"医疗": "🏥",
	"教育": "📚",
	"住房": "🏠",
	"工资": "💰",
	"兼职": "💼",
	"投资": "📈",
	"其他": "📌",
}

// CategoryIcon maps a category name to its display icon, falling back
// to a generic pin for unknown categories.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return fallbackIcon
}
