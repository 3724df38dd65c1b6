package domain

// CategoryInfo is display metadata for a component category.
type CategoryInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// KnownCategories lists the category keys the showcase ships with, in display order.
var KnownCategories = []CategoryInfo{
	{Key: "input_widgets", Name: "入力ウィジェット", Icon: "📝", Description: "ユーザー入力を受け付けるコンポーネント"},
	{Key: "select_widgets", Name: "選択ウィジェット", Icon: "☑️", Description: "選択肢から選ぶコンポーネント"},
	{Key: "display_widgets", Name: "表示ウィジェット", Icon: "📊", Description: "データや情報を表示するコンポーネント"},
	{Key: "data_widgets", Name: "データ表示", Icon: "📋", Description: "データフレームやテーブルを表示するコンポーネント"},
	{Key: "chart_widgets", Name: "チャート", Icon: "📈", Description: "グラフやチャートを描画するコンポーネント"},
	{Key: "layout_widgets", Name: "レイアウト", Icon: "🎨", Description: "画面構成を制御するコンポーネント"},
	{Key: "media_widgets", Name: "メディア", Icon: "🎬", Description: "画像・音声・動画を扱うコンポーネント"},
	{Key: "status_widgets", Name: "ステータス", Icon: "⏳", Description: "進捗やステータスを表示するコンポーネント"},
	{Key: "control_widgets", Name: "制御フロー", Icon: "🔄", Description: "アプリケーションの制御フローに関するコンポーネント"},
}

// LookupCategory returns the metadata for a category key.
// Unknown keys yield a CategoryInfo carrying only the key as its name.
func LookupCategory(key string) (CategoryInfo, bool) {
	for _, c := range KnownCategories {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryInfo{Key: key, Name: key}, false
}
