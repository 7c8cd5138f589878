package office

import "strings"

// maxParagraphs caps the Word document body.
const maxParagraphs = 1200

// buildWord emits a WordprocessingML package with one paragraph per line,
// in input order.
func buildWord(lines []string) ([]byte, error) {
	if len(lines) > maxParagraphs {
		lines = lines[:maxParagraphs]
	}

	var body strings.Builder
	body.WriteString(xmlHeader)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	body.WriteString(`<w:body>`)
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(escapeXML(line))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`<w:sectPr/>`)
	body.WriteString(`</w:body></w:document>`)

	var pkg packageBuilder
	pkg.addPart("word/document.xml",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml",
		[]byte(body.String()))
	pkg.rootRel.add(relOfficeDocument, "word/document.xml")
	pkg.addMetadata("pdfconvert")
	return pkg.finish()
}
