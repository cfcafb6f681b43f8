package grading

import (
	"encoding/json"
	"strings"
)

// Option is one choice of a multiple-choice question.
// Upstream payloads represent options either as plain strings or as
// {label, text} objects; UnmarshalJSON accepts both so everything after
// the decode boundary works over a single shape.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Label = ""
		o.Text = s
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

// NormalizeOptions trims labels/text and fills in missing labels by
// position (A, B, C, ...). Returns a new slice; the input is not modified.
func NormalizeOptions(opts []Option) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		label := strings.ToUpper(strings.TrimSpace(o.Label))
		if label == "" {
			label = string(rune('A' + i))
		}
		out[i] = Option{Label: label, Text: strings.TrimSpace(o.Text)}
	}
	return out
}
