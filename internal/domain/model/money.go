package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// 金額はnumeric(12,2)と同じく小数2桁の文字列で返す（"100.00"）
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price string `json:"price"`
	}{product(p), money(p.Price)})
}

func (s OrderSummary) MarshalJSON() ([]byte, error) {
	type summary OrderSummary
	return json.Marshal(struct {
		summary
		Total string `json:"total"`
	}{summary(s), money(s.Total)})
}

func (l OrderLineView) MarshalJSON() ([]byte, error) {
	type line OrderLineView
	return json.Marshal(struct {
		line
		UnitPrice string `json:"unit_price"`
		Subtotal  string `json:"subtotal"`
	}{line(l), money(l.UnitPrice), money(l.Subtotal)})
}

// OrderSummaryのMarshalJSONが埋め込みで昇格するとLinesが消えるので別に書く
func (v OrderView) MarshalJSON() ([]byte, error) {
	type summary OrderSummary
	return json.Marshal(struct {
		summary
		Total string          `json:"total"`
		Lines []OrderLineView `json:"lines"`
	}{summary(v.OrderSummary), money(v.Total), v.Lines})
}
