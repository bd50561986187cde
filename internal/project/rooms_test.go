package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/piwi3910/RoomFit/internal/assets"
)

func TestRoomFileRoundTrip(t *testing.T) {
	demo, err := assets.DemoScenario()
	if err != nil {
		t.Fatal(err)
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(t.TempDir(), "room"+ext)
		if err := SaveRoomFile(path, demo); err != nil {
			t.Fatalf("%s: SaveRoomFile failed: %v", ext, err)
		}
		loaded, err := LoadRoomFile(path)
		if err != nil {
			t.Fatalf("%s: LoadRoomFile failed: %v", ext, err)
		}
		if !reflect.DeepEqual(demo, loaded) {
			t.Errorf("%s: room changed on round trip:\n got %+v\nwant %+v", ext, loaded, demo)
		}
	}
}

func TestLoadRoomFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bedroom.yaml")
	data := `
name: Bedroom
width: 3.5
depth: 3
height: 2.5
doors:
  - {x: 1.75, y: 0.5, breadth: 0.8, direction: 2}
order: [bed, wardrobe]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadRoomFile(path)
	if err != nil {
		t.Fatalf("LoadRoomFile failed: %v", err)
	}
	if s.Name != "Bedroom" || s.Width != 3.5 || len(s.Doors) != 1 {
		t.Errorf("unexpected room %+v", s.RoomSpec)
	}
	if !reflect.DeepEqual(s.Order, []string{"bed", "wardrobe"}) {
		t.Errorf("unexpected order %v", s.Order)
	}
}

func TestLoadRoomFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRoomFile(filepath.Join(dir, "absent.yaml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}

	off := filepath.Join(dir, "off.yaml")
	if err := os.WriteFile(off, []byte("width: 4\ndepth: 3\nheight: 2.5\ndoors:\n  - {x: 0, y: 0, breadth: 0.8, direction: 1}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRoomFile(off); err == nil || !strings.Contains(err.Error(), "invalid room") {
		t.Errorf("expected invalid room error, got %v", err)
	}

	txt := filepath.Join(dir, "room.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRoomFile(txt); err == nil {
		t.Error("expected unsupported type error")
	}
	if err := SaveRoomFile(txt, assets.Scenario{}); err == nil {
		t.Error("expected unsupported type error on save")
	}
}
