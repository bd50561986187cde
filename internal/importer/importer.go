// Package importer provides CSV and Excel import of fitting order lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomFit/internal/model"
)

// OrderLine is one row of an order list: a fitting model and how many of it.
type OrderLine struct {
	ModelID  string
	Quantity int
	Note     string
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Lines    []OrderLine
	Errors   []string
	Warnings []string
}

// Order expands the lines into the model id list the engine expects, one
// entry per fitting, keeping file order.
func (r ImportResult) Order() []string {
	var out []string
	for _, l := range r.Lines {
		for i := 0; i < l.Quantity; i++ {
			out = append(out, l.ModelID)
		}
	}
	return out
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Model    int
	Quantity int
	Note     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"model":    {"model", "fitting", "fitting model", "fitting_model_id", "model id", "id", "furniture", "item", "name"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"note":     {"note", "notes", "comment", "description", "desc", "room"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (model, quantity, note) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Model: -1, Quantity: -1, Note: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "model":
					if mapping.Model == -1 {
						mapping.Model = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "note":
					if mapping.Note == -1 {
						mapping.Note = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Model: 0, Quantity: 1, Note: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an OrderLine from a row. A missing quantity means one.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (OrderLine, string, string) {
	id := getCell(row, mapping.Model)
	if id == "" {
		return OrderLine{}, fmt.Sprintf("%s: Missing model", rowLabel), ""
	}

	line := OrderLine{ModelID: id, Quantity: 1, Note: getCell(row, mapping.Note)}

	var warning string
	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		if mapping.Quantity >= 0 && mapping.Quantity < len(row) {
			warning = fmt.Sprintf("%s: Empty quantity, defaulting to 1", rowLabel)
		}
		return line, "", warning
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return OrderLine{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}
	if qty <= 0 {
		return OrderLine{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
	}
	line.Quantity = qty
	return line, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import reads an order list, choosing the reader from the file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	}
	return ImportResult{Errors: []string{fmt.Sprintf("Unsupported order file type: %s", filepath.Ext(path))}}
}

// ImportCSV imports an order list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports an order list from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports an order list from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Model == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Model")
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still has a non-numeric quantity column.
		if q := strings.TrimSpace(rows[0][1]); q != "" {
			if _, err := strconv.Atoi(q); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		line, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Lines = append(result.Lines, line)
	}

	if len(result.Lines) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// CheckModels moves lines naming models the catalog does not know into
// Errors, so the order can be passed straight to the engine.
func CheckModels(result ImportResult, c *model.Catalog) ImportResult {
	kept := result.Lines[:0:0]
	for _, l := range result.Lines {
		if _, ok := c.FittingModel(l.ModelID); !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown fitting model '%s'", l.ModelID))
			continue
		}
		kept = append(kept, l)
	}
	result.Lines = kept
	return result
}
