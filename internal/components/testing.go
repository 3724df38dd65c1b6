package components

import (
	"path/filepath"
	"testing"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
)

// TestComponents returns a small catalog for tests.
// This is exported for use in integration tests.
func TestComponents() []domain.Component {
	return []domain.Component{
		{
			ID:          "text_input",
			Name:        "st.text_input",
			Category:    "input_widgets",
			Description: "単一行のテキストを入力するウィジェット",
			Tags:        []string{"input", "text", "form"},
			Keywords:    []string{"テキスト", "入力", "文字列"},
			Related:     []string{"text_area", "number_input"},
		},
		{
			ID:          "number_input",
			Name:        "st.number_input",
			Category:    "input_widgets",
			Description: "数値を入力するウィジェット",
			Tags:        []string{"input", "number", "form"},
			Keywords:    []string{"数値", "入力"},
		},
		{
			ID:          "text_area",
			Name:        "st.text_area",
			Category:    "input_widgets",
			Description: "複数行のテキストを入力するウィジェット",
			Tags:        []string{"input", "text", "multiline"},
			Keywords:    []string{"テキストエリア", "複数行"},
			Related:     []string{"text_input"},
		},
		{
			ID:          "checkbox",
			Name:        "st.checkbox",
			Category:    "select_widgets",
			Description: "オンオフを切り替えるチェックボックス",
			Tags:        []string{"select", "boolean"},
			Keywords:    []string{"チェック", "選択"},
		},
		{
			ID:          "selectbox",
			Name:        "st.selectbox",
			Category:    "select_widgets",
			Description: "ドロップダウンから一つ選択する",
			Tags:        []string{"select", "dropdown"},
			Keywords:    []string{"セレクト", "選択"},
		},
		{
			ID:          "line_chart",
			Name:        "st.line_chart",
			Category:    "chart_widgets",
			Description: "折れ線グラフを描画する",
			Tags:        []string{"chart", "line"},
			Keywords:    []string{"折れ線", "グラフ"},
			Related:     []string{"bar_chart"},
		},
		{
			ID:          "bar_chart",
			Name:        "st.bar_chart",
			Category:    "chart_widgets",
			Description: "棒グラフを描画する",
			Tags:        []string{"chart", "bar"},
			Keywords:    []string{"棒グラフ", "グラフ"},
		},
		{
			ID:          "dataframe",
			Name:        "st.dataframe",
			Category:    "data_widgets",
			Description: "Interactive dataframe table with sorting",
			Tags:        []string{"data", "table"},
			Keywords:    []string{"データフレーム", "表"},
		},
	}
}

// WriteTestCatalog writes components to name inside dir and returns the file path.
// The format follows the file extension.
func WriteTestCatalog(t testing.TB, dir, name string, components []domain.Component) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := SaveCatalog(path, components); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
	return path
}
