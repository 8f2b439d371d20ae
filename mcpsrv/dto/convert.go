package dto

import (
	"github.com/qyinm/pullshop/types"
	"github.com/qyinm/pullshop/view"
)

func FromProduct(p types.Product) Product {
	return Product{
		ID:    p.ID(),
		Name:  p.Name(),
		Price: p.PriceText(),
		Glyph: p.Glyph(),
	}
}

func FromProducts(products []types.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCategory(c types.CategoryConfig) Category {
	return Category{Key: string(c.Key()), Label: c.Label(), Color: c.Color()}
}

func FromCategories(configs []types.CategoryConfig) []Category {
	out := make([]Category, 0, len(configs))
	for _, c := range configs {
		out = append(out, FromCategory(c))
	}
	return out
}

func FromCategoryConfig(c types.CategoryConfig) CategoryConfig {
	text := c.Texts()
	return CategoryConfig{
		Key:                 string(c.Key()),
		Label:               c.Label(),
		Theme:               c.Theme(),
		Color:               c.Color(),
		Icon:                string(c.Icon()),
		Text:                Copy{Pulling: text.Pulling, Loosing: text.Loosing, Loading: text.Loading},
		AnimationDurationMs: c.AnimationDurationMs(),
		ThresholdPx:         c.ThresholdPx(),
	}
}

func FromGestureState(st types.GestureState) GestureState {
	return GestureState{
		Status:         st.Status.String(),
		IsPulling:      st.IsPulling,
		IsRefreshing:   st.IsRefreshing,
		PullDistancePx: st.PullDistancePx,
	}
}

func FromRender(r view.Render) Render {
	return Render{
		Copy:       r.Copy,
		StyleCSS:   r.Style.CSS(),
		TranslateY: r.Style.TranslateYPx,
		Visible:    r.Style.Visible,
		Transition: r.Style.Transition,
		IconMarkup: r.Icon,
	}
}
