package importer

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomFit/internal/assets"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	cases := map[rune]string{
		',':  "Model,Qty\nsofa,1\nchair,4\n",
		';':  "Model;Qty\nsofa;1\nchair;4\n",
		'\t': "Model\tQty\nsofa\t1\nchair\t4\n",
		'|':  "Model|Qty\nsofa|1\nchair|4\n",
	}
	for want, data := range cases {
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("expected %q delimiter, got %q", want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Model", "Quantity", "Note"})
	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping != (ColumnMapping{Model: 0, Quantity: 1, Note: 2}) {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNamesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "Comment", "Fitting"})
	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping != (ColumnMapping{Model: 2, Quantity: 0, Note: 1}) {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"sofa", "1"})
	if isHeader {
		t.Error("expected no header detection for data rows")
	}
	if mapping != (ColumnMapping{Model: 0, Quantity: 1, Note: 2}) {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Model,Quantity,Note\nsofa,1,living\nchair,4,\ntv,,wall unit\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	want := []OrderLine{
		{ModelID: "sofa", Quantity: 1, Note: "living"},
		{ModelID: "chair", Quantity: 4},
		{ModelID: "tv", Quantity: 1, Note: "wall unit"},
	}
	if !reflect.DeepEqual(result.Lines, want) {
		t.Fatalf("expected %+v, got %+v", want, result.Lines)
	}
	if got := strings.Join(result.Warnings, "|"); !strings.Contains(got, "Line 4: Empty quantity") {
		t.Errorf("expected empty quantity warning, got %v", result.Warnings)
	}
	order := result.Order()
	if len(order) != 6 || order[0] != "sofa" || order[4] != "chair" || order[5] != "tv" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("sofa,1\nlamp,2\n"), ',')
	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if !reflect.DeepEqual(result.Order(), []string{"sofa", "lamp", "lamp"}) {
		t.Errorf("unexpected order %v", result.Order())
	}
}

func TestImportCSVFromReader_SingleColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("sofa\nlamp\n"), ',')
	if len(result.Errors) > 0 || len(result.Warnings) > 0 {
		t.Errorf("unexpected problems: %v %v", result.Errors, result.Warnings)
	}
	if !reflect.DeepEqual(result.Order(), []string{"sofa", "lamp"}) {
		t.Errorf("unexpected order %v", result.Order())
	}
}

func TestImportCSVFromReader_UnrecognizedHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Piece,How many\nsofa,1\n"), ',')
	if len(result.Lines) != 1 || result.Lines[0].ModelID != "sofa" {
		t.Fatalf("expected one sofa line, got %+v (errors: %v)", result.Lines, result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "Detected header row, skipping" {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Model,Qty\nsofa,1\n,2\nlamp,two\nchair,0\nchair,-1\n\n  ,  \ntv,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	wantErrors := []string{
		"Line 3: Missing model",
		"Line 4: Invalid quantity 'two'",
		"Line 5: Quantity must be positive",
		"Line 6: Quantity must be positive",
	}
	if !reflect.DeepEqual(result.Errors, wantErrors) {
		t.Errorf("expected errors %v, got %v", wantErrors, result.Errors)
	}
	if !reflect.DeepEqual(result.Order(), []string{"sofa", "tv"}) {
		t.Errorf("unexpected order %v", result.Order())
	}
}

func TestImportCSVFromReader_MissingModelColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Qty,Note\n1,x\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Model") {
		t.Errorf("expected missing model column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyAndHeaderOnly(t *testing.T) {
	for _, data := range []string{"", "Model,Qty\n"} {
		result := ImportCSVFromReader(strings.NewReader(data), ',')
		if len(result.Errors) == 0 {
			t.Errorf("expected an error for %q", data)
		}
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.csv")
	if err := os.WriteFile(path, []byte("Fitting;Pcs\nchair;2\ndining_table;1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
	if !reflect.DeepEqual(result.Order(), []string{"chair", "chair", "dining_table"}) {
		t.Errorf("unexpected order %v", result.Order())
	}
}

func TestImportCSV_FileProblems(t *testing.T) {
	dir := t.TempDir()
	if r := ImportCSV(filepath.Join(dir, "missing.csv")); len(r.Errors) == 0 {
		t.Error("expected error for missing file")
	}
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := ImportCSV(empty); len(r.Errors) != 1 || r.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", r.Errors)
	}
	if r := Import(filepath.Join(dir, "order.pdf")); len(r.Errors) != 1 {
		t.Errorf("expected unsupported type error, got %v", r.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Qty", "Model"},
		{1, "sofa"},
		{2, "lamp"},
	})

	result := Import(path)
	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if !reflect.DeepEqual(result.Order(), []string{"sofa", "lamp", "lamp"}) {
		t.Errorf("unexpected order %v", result.Order())
	}
}

func TestImportExcel_RowLabels(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Model", "Qty"},
		{"sofa", "lots"},
	})
	result := ImportExcel(path)
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected a Row 2 error, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── Catalog Check ─────────────────────────────────────────

func TestCheckModels(t *testing.T) {
	c, err := assets.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	result := ImportCSVFromReader(strings.NewReader("sofa,1\nthrone,1\ntv,1\n"), ',')
	ids := c.ModelIDs()
	result.Lines[0].ModelID = ids[0]
	result.Lines[2].ModelID = ids[1]

	checked := CheckModels(result, c)
	if len(checked.Lines) != 2 {
		t.Fatalf("expected 2 known lines, got %+v", checked.Lines)
	}
	if len(checked.Errors) != 1 || checked.Errors[0] != "Unknown fitting model 'throne'" {
		t.Errorf("unexpected errors %v", checked.Errors)
	}
	if len(result.Lines) != 3 {
		t.Error("CheckModels must not modify the input lines")
	}
}
