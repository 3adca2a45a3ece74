package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNew_Languages(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"en", language.English},
		{"zh", language.Chinese},
		{"zh-CN", language.Chinese},
		{"fr", language.English},
		{"", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.lang).Language())
		})
	}
}

func TestTranslator_T(t *testing.T) {
	en := New("en")
	zh := New("zh")

	assert.Equal(t, "Saved", en.T(SavedTitle))
	assert.Equal(t, "表", zh.T(TableTitle))
	assert.Equal(t, "Copied daily revenue", en.T(Copied, "daily revenue"))
	assert.Equal(t, "Select database / schema", en.T(CascaderPlaceholder))
}

func TestCatalogsHaveTheSameKeys(t *testing.T) {
	for key := range messages[language.English] {
		_, ok := messages[language.Chinese][key]
		assert.True(t, ok, "missing Chinese message for %s", key)
	}
}
