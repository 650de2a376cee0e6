package chats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartTitle(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"keeps three words", "tolong review essay LPDP saya", "Tolong Review Essay"},
		{"drops short words", "my LPDP plan is on track", "LPDP Plan Track"},
		{"strips punctuation", "hello, world! (again)", "Hello World Again"},
		{"distinct words only", "essay essay essay draft", "Essay Draft"},
		{"case sensitive distinctness", "Essay essay", "Essay Essay"},
		{"empty", "", DefaultTitle},
		{"only short words", "a an to of", DefaultTitle},
		{"only symbols", "!!! ???", DefaultTitle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SmartTitle(tc.in))
		})
	}
}
