package catalog

import (
	"github.com/qyinm/pullshop/types"
	"github.com/shopspring/decimal"
)

type seed struct {
	id    int64
	name  string
	price string
	glyph string
}

var seeds = map[types.Category][]seed{
	types.Fresh: {
		{1, "新鲜草莓", "29.90", "🍓"},
		{2, "有机苹果", "19.90", "🍎"},
		{3, "时令蔬菜", "15.80", "🥬"},
		{4, "精选牛肉", "89.00", "🥩"},
		{5, "鲜活海鲜", "128.00", "🦐"},
		{6, "有机鸡蛋", "28.50", "🥚"},
	},
	types.Digital: {
		{1, "智能手机", "3999.00", "📱"},
		{2, "笔记本电脑", "5999.00", "💻"},
		{3, "无线耳机", "299.00", "🎧"},
		{4, "智能手表", "1299.00", "⌚"},
		{5, "游戏主机", "2499.00", "🎮"},
		{6, "数码相机", "4599.00", "📷"},
	},
	types.Clothing: {
		{1, "时尚T恤", "99.00", "👕"},
		{2, "休闲裤", "199.00", "👖"},
		{3, "运动鞋", "299.00", "👟"},
		{4, "连衣裙", "259.00", "👗"},
		{5, "外套", "399.00", "🧥"},
		{6, "配饰", "59.00", "👒"},
	},
}

func tpl(name string, min, max int64, glyph string) types.Template {
	return types.Template{
		Name:     name,
		PriceMin: decimal.NewFromInt(min),
		PriceMax: decimal.NewFromInt(max),
		Glyph:    glyph,
	}
}

var pools = map[types.Category][]types.Template{
	types.Fresh: {
		tpl("新鲜草莓", 20, 40, "🍓"),
		tpl("有机苹果", 15, 30, "🍎"),
		tpl("时令蔬菜", 10, 25, "🥬"),
		tpl("精选牛肉", 80, 120, "🥩"),
		tpl("鲜活海鲜", 100, 180, "🦐"),
		tpl("有机鸡蛋", 25, 35, "🥚"),
		tpl("新鲜橙子", 18, 32, "🍊"),
		tpl("时令水果", 22, 45, "🍉"),
	},
	types.Digital: {
		tpl("智能手机", 3000, 6000, "📱"),
		tpl("笔记本电脑", 5000, 10000, "💻"),
		tpl("无线耳机", 200, 500, "🎧"),
		tpl("智能手表", 1000, 2000, "⌚"),
		tpl("游戏主机", 2000, 3000, "🎮"),
		tpl("数码相机", 4000, 8000, "📷"),
		tpl("平板电脑", 2500, 5000, "📱"),
		tpl("显示器", 800, 2000, "🖥️"),
	},
	types.Clothing: {
		tpl("时尚T恤", 80, 150, "👕"),
		tpl("休闲裤", 150, 300, "👖"),
		tpl("运动鞋", 250, 500, "👟"),
		tpl("连衣裙", 200, 400, "👗"),
		tpl("外套", 300, 600, "🧥"),
		tpl("配饰", 50, 150, "👒"),
		tpl("运动装", 180, 350, "👕"),
		tpl("牛仔裤", 200, 400, "👖"),
	},
}
