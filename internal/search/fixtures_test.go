package search

import (
	"testing"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixtureComponents() []domain.Component {
	return []domain.Component{
		{
			ID:          "text_input",
			Name:        "st.text_input",
			Category:    "input_widgets",
			Description: "単一行のテキスト入力フィールド",
			Tags:        []string{"input", "text", "form", "basic"},
			Keywords:    []string{"テキスト", "入力", "文字列", "フォーム"},
			Related:     []string{"text_area", "number_input"},
		},
		{
			ID:          "number_input",
			Name:        "st.number_input",
			Category:    "input_widgets",
			Description: "数値入力フィールド",
			Tags:        []string{"input", "number", "form", "basic"},
			Keywords:    []string{"数値", "入力", "数字", "フォーム"},
		},
		{
			ID:          "text_area",
			Name:        "st.text_area",
			Category:    "input_widgets",
			Description: "複数行のテキスト入力エリア",
			Tags:        []string{"input", "text", "multiline", "form"},
			Keywords:    []string{"テキストエリア", "複数行", "入力", "長文"},
		},
		{
			ID:          "checkbox",
			Name:        "st.checkbox",
			Category:    "select_widgets",
			Description: "チェックボックス",
			Tags:        []string{"select", "boolean", "toggle", "basic"},
			Keywords:    []string{"チェック", "選択", "オンオフ", "ブール"},
		},
		{
			ID:          "line_chart",
			Name:        "st.line_chart",
			Category:    "chart_widgets",
			Description: "折れ線グラフ",
			Tags:        []string{"chart", "line", "graph", "basic"},
			Keywords:    []string{"折れ線", "グラフ", "チャート", "推移"},
			Related:     []string{"area_chart", "bar_chart"},
		},
		{
			ID:          "bar_chart",
			Name:        "st.bar_chart",
			Category:    "chart_widgets",
			Description: "棒グラフ",
			Tags:        []string{"chart", "bar", "graph", "basic"},
			Keywords:    []string{"棒グラフ", "バー", "チャート", "比較"},
		},
		{
			ID:          "area_chart",
			Name:        "st.area_chart",
			Category:    "chart_widgets",
			Description: "エリアチャート",
			Tags:        []string{"chart", "area", "graph"},
			Keywords:    []string{"エリア", "面", "チャート", "累積"},
		},
		{
			ID:          "dataframe",
			Name:        "st.dataframe",
			Category:    "data_widgets",
			Description: "インタラクティブなデータフレーム表示",
			Tags:        []string{"data", "table", "dataframe", "basic"},
			Keywords:    []string{"データフレーム", "テーブル", "表", "データ"},
		},
	}
}

func newFixtureEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := NewEngine(fixtureComponents(), opts...)
	require.NoError(t, err)
	return e
}

func resultIDs(results []domain.SearchResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ComponentID)
	}
	return ids
}
