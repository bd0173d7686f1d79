package analytics

import (
	"fmt"
	"strings"
)

// Window is a recency filter for the monthly view.
type Window string

const (
	WindowAll    Window = "all"
	Window10Days Window = "10d"
	Window20Days Window = "20d"
	Window30Days Window = "30d"
)

// Windows lists the accepted windows in display order.
var Windows = []Window{WindowAll, Window10Days, Window20Days, Window30Days}

// ParseWindow parses a window name. The empty string means WindowAll.
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if w == "" {
		return WindowAll, nil
	}
	for _, known := range Windows {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown window %q (want all, 10d, 20d or 30d)", s)
}

// Days returns the window length, 0 for WindowAll.
func (w Window) Days() int {
	switch w {
	case Window10Days:
		return 10
	case Window20Days:
		return 20
	case Window30Days:
		return 30
	default:
		return 0
	}
}

// View selects one of the derived analytics views.
type View string

const (
	ViewTop      View = "top"
	ViewCategory View = "category"
	ViewMonthly  View = "monthly"
)

// Views lists the accepted views.
var Views = []View{ViewTop, ViewCategory, ViewMonthly}

// ParseView parses a view name. The empty string means ViewCategory, the
// view the dashboard opens on.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return ViewCategory, nil
	}
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (want top, category or monthly)", s)
}
