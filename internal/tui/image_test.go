package tui

import (
	"strings"
	"testing"

	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

func TestImagePhotoEntry(t *testing.T) {
	ctrl := newCtrl(t)
	ctrl.ToggleShape("heart")
	m := newImageModel(ctrl)

	m, _ = m.Update(key("p"))
	if !m.editing {
		t.Fatal("expected photo url editor open")
	}
	for _, k := range []string{"h", "t", "t", "p"} {
		m, _ = m.Update(key(k))
	}
	m, _ = m.Update(key("enter"))

	s := ctrl.Session()
	if s.ImageChoice != domain.ImagePhoto {
		t.Fatalf("image choice = %q, want photo", s.ImageChoice)
	}
	if s.PhotoURL != "http" {
		t.Errorf("photo url = %q, want %q", s.PhotoURL, "http")
	}
}

func TestImageColorCycling(t *testing.T) {
	ctrl := newCtrl(t)
	ctrl.ToggleShape("heart")
	ctrl.ToggleShape("star")
	m := newImageModel(ctrl)

	m, _ = m.Update(key("l"))
	s := ctrl.Session()
	if s.ColorAssignments["heart"] != shapePalette[0] {
		t.Fatalf("heart color = %q, want first palette entry", s.ColorAssignments["heart"])
	}

	m, _ = m.Update(key("l"))
	if s.ColorAssignments["heart"] != shapePalette[1] {
		t.Errorf("heart color = %q, want second palette entry after cycle", s.ColorAssignments["heart"])
	}

	// Move to the second shape and color it independently.
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("h"))
	if s.ColorAssignments["star"] == "" {
		t.Error("expected star colored")
	}
	if s.ImageChoice != domain.ImageColors {
		t.Errorf("image choice = %q, want colors", s.ImageChoice)
	}
}

func TestImagePhotoDropsColors(t *testing.T) {
	ctrl := newCtrl(t)
	ctrl.ToggleShape("heart")
	m := newImageModel(ctrl)

	m, _ = m.Update(key("l")) // color first
	m, _ = m.Update(key("p"))
	m, _ = m.Update(key("u"))
	m, _ = m.Update(key("enter"))

	s := ctrl.Session()
	if s.ImageChoice != domain.ImagePhoto || len(s.ColorAssignments) != 0 {
		t.Errorf("choice=%q colors=%d, want photo with no colors", s.ImageChoice, len(s.ColorAssignments))
	}
}

func TestImageClear(t *testing.T) {
	ctrl := newCtrl(t)
	ctrl.ToggleShape("heart")
	m := newImageModel(ctrl)

	m, _ = m.Update(key("l"))
	m, _ = m.Update(key("x"))
	s := ctrl.Session()
	if s.ImageChoice != domain.ImageNone || len(s.ColorAssignments) != 0 {
		t.Errorf("expected image step reset, got choice=%q colors=%d", s.ImageChoice, len(s.ColorAssignments))
	}
	if !strings.Contains(m.View(), "nothing chosen yet") {
		t.Error("expected reset copy in view")
	}
}
