package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"userInfo", "user_info"},
		{"PlayerState", "player_state"},
		{"UserIDs", "user_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := snake(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a", "A"},
		{"x", "X"},
		{"id", "ID"},
		{"playerName", "PlayerName"},
		{"scoreItem0", "ScoreItem0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := pascal(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"scores", "score"},
		{"players", "player"},
		{"categories", "category"},
		{"x", "x"},
		{"position", "position"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, singular(tt.input))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", `"hello"`},
		{"hello\nworld", `"hello\nworld"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\tmp`, `"C:\\tmp"`},
		{"tab\there", `"tab\there"`},
		{"héllo", `"héllo"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, quote(tt.input))
		})
	}
}

func TestFloatLiteral(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{0.1, "0.1"},
		{1e20, "1e+20"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, floatLiteral(tt.input))
		})
	}
}

func TestItemName(t *testing.T) {
	f := &Field{Name: "scores"}
	assert.Equal(t, "scoreItem0", f.ItemName(0))
	assert.Equal(t, "scoreItem2", f.ItemName(2))

	l := NewLoop(f, 1)
	assert.Equal(t, Loop{Depth: 1, Index: "i1", Count: "count1", Item: "scoreItem1", Source: "srcScoreItem1"}, l)
}
