package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qyinm/pullshop/types"
)

// HeaderHeightPx is the height of the refresh header's reveal window.
const HeaderHeightPx = 60.0

const (
	transitionEase = "all 0.3s ease"
	transitionNone = "none"
)

// HeaderStyle is the inline style of the refresh header.
type HeaderStyle struct {
	HeightPx     float64
	TranslateYPx float64
	Opacity      float64
	Visible      bool
	Transition   string
}

// CSS renders the style as an inline style attribute value.
func (s HeaderStyle) CSS() string {
	visibility := "hidden"
	if s.Visible {
		visibility = "visible"
	}
	return strings.Join([]string{
		"height: " + px(s.HeightPx),
		"min-height: " + px(s.HeightPx),
		"transform: translateY(" + px(s.TranslateYPx) + ")",
		"opacity: " + num(s.Opacity),
		"visibility: " + visibility,
		"transition: " + s.Transition,
	}, "; ")
}

// DisplayCopy returns the header text for the gesture state.
func DisplayCopy(cfg types.CategoryConfig, st types.GestureState) string {
	return cfg.Copy(st.Status)
}

// StyleFor derives the header style from the gesture state. The transition
// is disabled while loading so the pinned header does not animate.
func StyleFor(st types.GestureState) HeaderStyle {
	distance := st.PullDistancePx
	if distance < 0 {
		distance = 0
	}
	s := HeaderStyle{
		HeightPx:     HeaderHeightPx,
		TranslateYPx: -HeaderHeightPx,
		Transition:   transitionEase,
	}
	if distance > 0 {
		s.TranslateYPx = distance - HeaderHeightPx
		s.Opacity = 1
		s.Visible = true
	}
	if st.Status == types.StatusLoading {
		s.Transition = transitionNone
	}
	return s
}

const (
	dropletSVG = `<svg width="30" height="30" viewBox="0 0 100 100">` +
		`<path d="M50,10 C30,10 10,30 10,50 C10,70 30,90 50,90 C70,90 90,70 90,50 C90,30 70,10 50,10 Z" fill="currentColor"/>` +
		`</svg>`
	gearSVG = `<svg width="30" height="30" viewBox="0 0 100 100">` +
		`<circle cx="50" cy="50" r="35" fill="currentColor" opacity="0.3"/>` +
		`<circle cx="50" cy="50" r="20" fill="none" stroke="currentColor" stroke-width="3"/>` +
		`<circle cx="50" cy="50" r="5" fill="currentColor"/>` +
		`</svg>`
	clothesSVG = `<svg width="30" height="30" viewBox="0 0 100 100">` +
		`<path d="M50,10 L35,20 L35,70 L50,90 L65,70 L65,20 Z" fill="currentColor"/>` +
		`<path d="M40,20 Q50,15 60,20" fill="none" stroke="white" stroke-width="2"/>` +
		`<path d="M35,25 Q25,25 25,35 Q25,45 35,40" fill="currentColor"/>` +
		`<path d="M65,25 Q75,25 75,35 Q75,45 65,40" fill="currentColor"/>` +
		`</svg>`
)

// IconMarkup renders the icon for kind with the status as an animation
// class hook. Unknown kinds render the droplet.
func IconMarkup(kind types.IconKind, status types.Status) string {
	switch kind {
	case types.IconGear:
		return iconWrap(status, "gear-icon", gearSVG)
	case types.IconClothes:
		return iconWrap(status, "clothes-icon", clothesSVG)
	default:
		return iconWrap(status, "droplet-icon", dropletSVG)
	}
}

func iconWrap(status types.Status, class, svg string) string {
	return fmt.Sprintf(`<div class="animation-icon %s %s">%s</div>`, status, class, svg)
}

// Render is everything a host binds for one frame.
type Render struct {
	Config   types.CategoryConfig
	Gesture  types.GestureState
	Copy     string
	Style    HeaderStyle
	Icon     string
	Products []types.Product
}

// Preview derives the render outputs for an arbitrary state.
func Preview(cfg types.CategoryConfig, st types.GestureState) Render {
	return Render{
		Config:  cfg,
		Gesture: st,
		Copy:    DisplayCopy(cfg, st),
		Style:   StyleFor(st),
		Icon:    IconMarkup(cfg.Icon(), st.Status),
	}
}

func px(v float64) string { return num(v) + "px" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
