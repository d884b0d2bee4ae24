package gsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, columnLetter(tc.col), "columnLetter(%d)", tc.col)
	}
}

func TestA1Range(t *testing.T) {
	c := &Client{worksheet: "ACT comercial"}
	assert.Equal(t, "'ACT comercial'!B2", c.a1Range(1, 2))
	assert.Equal(t, "'ACT comercial'!AA21", c.a1Range(26, 21))
}
