// Package theme holds the per-category pull-to-refresh configuration.
package theme

import (
	"github.com/qyinm/pullshop/types"
)

// Store is an immutable category → config table. It is built once and
// never mutated afterwards, so it is safe to share.
type Store struct {
	configs map[types.Category]types.CategoryConfig
	order   []types.Category
}

// Compile-time interface check
var _ types.ConfigSource = (*Store)(nil)

var builtin = []types.CategoryConfig{
	types.NewCategoryConfig(types.Fresh, "生鲜", "green", "#4cd964", types.IconDroplet, types.Copy{
		Pulling: "下拉获取新鲜食材...",
		Loosing: "松开刷新啦~",
		Loading: "正在挑选最新鲜的...",
	}, 300, 80),
	types.NewCategoryConfig(types.Digital, "数码", "blue", "#007aff", types.IconGear, types.Copy{
		Pulling: "下拉探索黑科技...",
		Loosing: "松开加载新品~",
		Loading: "正在加载前沿数码...",
	}, 400, 80),
	types.NewCategoryConfig(types.Clothing, "服饰", "pink", "#ff2d55", types.IconClothes, types.Copy{
		Pulling: "下拉刷新潮流穿搭...",
		Loosing: "松开查看新款~",
		Loading: "正在更新当季流行...",
	}, 350, 80),
}

var defaultStore = newStore(builtin)

// Default returns the built-in store.
func Default() *Store {
	return defaultStore
}

func newStore(configs []types.CategoryConfig) *Store {
	s := &Store{
		configs: make(map[types.Category]types.CategoryConfig, len(configs)),
		order:   make([]types.Category, 0, len(configs)),
	}
	for _, c := range configs {
		if _, ok := s.configs[c.Key()]; !ok {
			s.order = append(s.order, c.Key())
		}
		s.configs[c.Key()] = c
	}
	return s
}

// Get returns the config for category, or the default category's config
// when the key is unknown.
func (s *Store) Get(category string) types.CategoryConfig {
	if c, ok := s.configs[types.Category(category)]; ok {
		return c
	}
	return s.configs[types.DefaultCategory]
}

// Categories returns all configs in tab order.
func (s *Store) Categories() []types.CategoryConfig {
	out := make([]types.CategoryConfig, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.configs[k])
	}
	return out
}
