package office

import (
	"fmt"
	"strings"
)

// maxColumns caps the worksheet width; cells beyond it are dropped.
const maxColumns = 8

// columnDelimiters in precedence order; the first one present in a line
// wins for that line.
var columnDelimiters = []string{"\t", ",", ";", "|"}

// buildExcel emits a SpreadsheetML package with a single worksheet. Each
// line becomes one row, split into columns by the first matching delimiter;
// a header row is synthesized on top. All cell values are inline strings —
// no shared-string table.
func buildExcel(lines []string) ([]byte, error) {
	rows := make([][]string, 0, len(lines))
	width := 1
	for _, line := range lines {
		cells := SplitColumns(line)
		if len(cells) > width {
			width = len(cells)
		}
		rows = append(rows, cells)
	}

	var sheet strings.Builder
	sheet.WriteString(xmlHeader)
	sheet.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	sheet.WriteString(`<sheetData>`)
	writeRow(&sheet, 1, headerCells(width))
	for i, cells := range rows {
		writeRow(&sheet, i+2, cells)
	}
	sheet.WriteString(`</sheetData></worksheet>`)

	var wb strings.Builder
	wb.WriteString(xmlHeader)
	wb.WriteString(`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	wb.WriteString(`<sheets><sheet name="Extracted" sheetId="1" r:id="rId1"/></sheets>`)
	wb.WriteString(`</workbook>`)

	var pkg packageBuilder
	pkg.addPart("xl/workbook.xml",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml",
		[]byte(wb.String()))
	wbRels := &relationships{}
	wbRels.add(relWorksheet, "worksheets/sheet1.xml")
	pkg.addRels("xl/_rels/workbook.xml.rels", wbRels)
	pkg.addPart("xl/worksheets/sheet1.xml",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml",
		[]byte(sheet.String()))

	pkg.rootRel.add(relOfficeDocument, "xl/workbook.xml")
	pkg.addMetadata("pdfconvert")
	return pkg.finish()
}

// SplitColumns splits a line by the first delimiter found, in precedence
// order tab, comma, semicolon, pipe. A line with no delimiter is a single
// column. At most maxColumns cells are kept.
func SplitColumns(line string) []string {
	for _, d := range columnDelimiters {
		if strings.Contains(line, d) {
			cells := strings.Split(line, d)
			if len(cells) > maxColumns {
				cells = cells[:maxColumns]
			}
			return cells
		}
	}
	return []string{line}
}

func headerCells(width int) []string {
	if width == 1 {
		return []string{"Extracted text"}
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = fmt.Sprintf("Column %d", i+1)
	}
	return cells
}

func writeRow(b *strings.Builder, rowNum int, cells []string) {
	fmt.Fprintf(b, `<row r="%d">`, rowNum)
	for i, cell := range cells {
		fmt.Fprintf(b, `<c r="%s%d" t="inlineStr"><is><t xml:space="preserve">%s</t></is></c>`,
			ColumnLetters(i), rowNum, escapeXML(cell))
	}
	b.WriteString(`</row>`)
}

// ColumnLetters converts a zero-based column index into spreadsheet column
// letters: 0 -> A, 25 -> Z, 26 -> AA. Repeated base-26 conversion with
// 1-based digits, since the alphabet has no zero letter.
func ColumnLetters(idx int) string {
	n := idx + 1
	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}
