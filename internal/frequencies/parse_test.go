package frequencies

import (
	"reflect"
	"testing"
)

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []RawFrequency
	}{
		{
			name: "native list",
			in: []any{
				map[string]any{"name": "LANGEN INFORMATION", "value": "119.150"},
				map[string]any{"name": "X", "value": 120.5},
			},
			want: []RawFrequency{{Name: "LANGEN INFORMATION", Value: "119.150"}, {Name: "X", Value: "120.5"}},
		},
		{
			name: "json string",
			in:   `[{"name":"BREMEN FIS","value":"126.925"}]`,
			want: []RawFrequency{{Name: "BREMEN FIS", Value: "126.925"}},
		},
		{
			name: "not json",
			in:   "not-json",
			want: []RawFrequency{},
		},
		{
			name: "json object not list",
			in:   `{"name":"X","value":"1"}`,
			want: []RawFrequency{},
		},
		{
			name: "number",
			in:   42.0,
			want: []RawFrequency{},
		},
		{
			name: "nil",
			in:   nil,
			want: []RawFrequency{},
		},
		{
			name: "non-object entries dropped",
			in:   []any{"junk", 3.0, map[string]any{"name": " A ", "value": " 1 "}},
			want: []RawFrequency{{Name: "A", Value: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRaw(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRaw() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
