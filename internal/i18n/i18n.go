// Package i18n holds the translated strings of the user interface.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	CascaderPlaceholder = "workspace.cascader.placeholder"
	SavedTitle          = "workspace.saved.title"
	TableTitle          = "workspace.table.title"
	Loading             = "common.loading"
	Empty               = "common.empty"
	Copied              = "workspace.saved.copied"
	FilterPlaceholder   = "workspace.table.filter"
	RowCount            = "workspace.table.rows"
	NoConnection        = "connection.none"
	Connecting          = "connection.connecting"
	ConnectionFailed    = "connection.failed"
)

var supported = []language.Tag{language.English, language.Chinese}

var messages = map[language.Tag]map[string]string{
	language.English: {
		CascaderPlaceholder: "Select database / schema",
		SavedTitle:          "Saved",
		TableTitle:          "Table",
		Loading:             "Loading…",
		Empty:               "No data",
		Copied:              "Copied %s",
		FilterPlaceholder:   "Filter tables (t: col: !)",
		RowCount:            "~%s rows",
		NoConnection:        "No connection",
		Connecting:          "Connecting to %s…",
		ConnectionFailed:    "Failed to connect to %s",
	},
	language.Chinese: {
		CascaderPlaceholder: "请选择数据库 / 模式",
		SavedTitle:          "已保存",
		TableTitle:          "表",
		Loading:             "加载中…",
		Empty:               "暂无数据",
		Copied:              "已复制 %s",
		FilterPlaceholder:   "过滤表 (t: col: !)",
		RowCount:            "约 %s 行",
		NoConnection:        "未连接",
		Connecting:          "正在连接 %s…",
		ConnectionFailed:    "连接 %s 失败",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Translator formats interface strings in one language
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for lang, falling back to English for
// unsupported or malformed language names
func New(lang string) *Translator {
	tag := language.English
	if t, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Language returns the language strings are rendered in
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T returns the message for key formatted with args
func (t *Translator) T(key string, args ...interface{}) string {
	return t.printer.Sprintf(key, args...)
}
