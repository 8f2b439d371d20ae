package dto

type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Glyph string `json:"glyph"`
}

type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type Copy struct {
	Pulling string `json:"pulling"`
	Loosing string `json:"loosing"`
	Loading string `json:"loading"`
}

type CategoryConfig struct {
	Key                 string  `json:"key"`
	Label               string  `json:"label"`
	Theme               string  `json:"theme"`
	Color               string  `json:"color"`
	Icon                string  `json:"icon"`
	Text                Copy    `json:"text"`
	AnimationDurationMs int     `json:"animation_duration_ms"`
	ThresholdPx         float64 `json:"threshold_px"`
}

type GestureState struct {
	Status         string  `json:"status"`
	IsPulling      bool    `json:"is_pulling"`
	IsRefreshing   bool    `json:"is_refreshing"`
	PullDistancePx float64 `json:"pull_distance_px"`
}

type Render struct {
	Copy       string  `json:"copy"`
	StyleCSS   string  `json:"style_css"`
	TranslateY float64 `json:"translate_y_px"`
	Visible    bool    `json:"visible"`
	Transition string  `json:"transition"`
	IconMarkup string  `json:"icon_markup"`
}
