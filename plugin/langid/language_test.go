package langid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	testCases := []struct {
		code string
		want Language
	}{
		{code: "en", want: English},
		{code: "EN", want: English},
		{code: "en-US", want: English},
		{code: "pt", want: Portuguese},
		{code: "pt-BR", want: Portuguese},
		{code: "ja", want: Japanese},
		{code: "vi", want: Vietnamese},
		{code: "nl", want: Dutch},
		{code: "zh", want: None},     // recognized tag, unsupported language
		{code: "xx-!!", want: None},  // unparseable
		{code: "", want: None},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FromCode(tc.code), "code %q", tc.code)
	}
}

func TestCodeRoundTrip(t *testing.T) {
	for _, lang := range Supported() {
		code := lang.Code()
		assert.NotEmpty(t, code)
		assert.Equal(t, lang, FromCode(code))
	}
	assert.Empty(t, None.Code())
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "japanese", Japanese.String())
}
