package project

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/piwi3910/RoomFit/internal/model"
)

func testLayout() model.Layout {
	room := model.RoomSpec{
		Name:    "Living room",
		Width:   5,
		Depth:   4,
		Height:  2.6,
		Windows: []model.WindowSpec{{X: 1, Y: -2, Breadth: 0.9, Direction: 1}},
	}
	placements := []model.FittingPlacement{
		{X: 0, Y: 1.5, Orientation: 0, Representation: model.RepresentationObject{FittingModelID: "sofa", FittingTypeID: "sofa"}},
		{X: -2, Y: 0, Orientation: 3 * math.Pi / 2, Representation: model.RepresentationObject{FittingModelID: "tv", FittingTypeID: "tv"}},
	}
	return model.NewLayout("Living room / v2", room, []string{"sofa", "tv"}, 99, placements)
}

func TestSaveAndLoadLayout(t *testing.T) {
	layout := testLayout()
	path := filepath.Join(t.TempDir(), "nested", LayoutFileName(layout))

	if err := SaveLayout(path, layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}
	loaded, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if !reflect.DeepEqual(layout, loaded) {
		t.Errorf("layout changed on round trip:\n got %+v\nwant %+v", loaded, layout)
	}
	if !loaded.Complete() {
		t.Error("expected complete layout")
	}
}

func TestLoadLayoutRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cases := map[string]string{
		"garbage":      "{{",
		"no room":      `{"name":"x","room":{"width":0,"depth":4,"height":2}}`,
		"nameless fit": `{"room":{"width":5,"depth":4,"height":2.6},"placements":[{"x":0,"y":0,"representation":{}}]}`,
	}
	for name, data := range cases {
		if _, err := LoadLayout(write(name+".json", data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadLayout(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadLayoutFillsEmptySlices(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.layout.json")
	if err := os.WriteFile(p, []byte(`{"room":{"width":3,"depth":3,"height":2.4}}`), 0644); err != nil {
		t.Fatal(err)
	}
	layout, err := LoadLayout(p)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if layout.Order == nil || layout.Placements == nil {
		t.Error("order and placements should never be nil")
	}
}

func TestLayoutFileName(t *testing.T) {
	layout := testLayout()
	want := "living_room___v2-" + layout.ID + LayoutExt
	if got := LayoutFileName(layout); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	layout.Name = "  "
	if got := LayoutFileName(layout); got != "layout-"+layout.ID+LayoutExt {
		t.Errorf("unexpected fallback name %s", got)
	}
}

func TestListLayouts(t *testing.T) {
	dir := t.TempDir()
	if got, err := ListLayouts(filepath.Join(dir, "missing")); err != nil || len(got) != 0 {
		t.Fatalf("missing dir: got %v, %v", got, err)
	}

	for _, name := range []string{"b" + LayoutExt, "a" + LayoutExt, "notes.txt", "config.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "c"+LayoutExt), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListLayouts(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a"+LayoutExt), filepath.Join(dir, "b"+LayoutExt)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
