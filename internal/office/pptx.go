package office

import (
	"fmt"
	"strings"
)

const (
	maxSlides        = 25
	maxLinesPerSlide = 12
)

const presentationNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// buildPowerPoint emits a PresentationML package. Lines are grouped into
// slides of up to maxLinesPerSlide; every slide carries a fixed title
// placeholder and its lines as body paragraphs.
//
// A slide exists in three places at once: the content-types manifest, the
// presentation's slide-ID list and the presentation relationships.
// registerSlide performs all three registrations per slide so the counts
// cannot disagree.
func buildPowerPoint(lines []string) ([]byte, error) {
	groups := groupSlides(lines)

	var pkg packageBuilder
	presRels := &relationships{}
	masterID := presRels.add(relSlideMaster, "slideMasters/slideMaster1.xml")

	var sldIDs strings.Builder
	for i, group := range groups {
		registerSlide(&pkg, presRels, &sldIDs, i+1, group)
	}

	var pres strings.Builder
	pres.WriteString(xmlHeader)
	pres.WriteString(`<p:presentation ` + presentationNS + `>`)
	fmt.Fprintf(&pres, `<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id=%q/></p:sldMasterIdLst>`, masterID)
	pres.WriteString(`<p:sldIdLst>` + sldIDs.String() + `</p:sldIdLst>`)
	pres.WriteString(`<p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`)
	pres.WriteString(`</p:presentation>`)

	pkg.addPart("ppt/presentation.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml",
		[]byte(pres.String()))
	pkg.addRels("ppt/_rels/presentation.xml.rels", presRels)

	addSlideMasterParts(&pkg)

	pkg.rootRel.add(relOfficeDocument, "ppt/presentation.xml")
	pkg.addMetadata("pdfconvert")
	return pkg.finish()
}

// groupSlides chunks lines into at most maxSlides groups of up to
// maxLinesPerSlide lines each; lines beyond the last slide are dropped.
func groupSlides(lines []string) [][]string {
	var groups [][]string
	for start := 0; start < len(lines) && len(groups) < maxSlides; start += maxLinesPerSlide {
		end := start + maxLinesPerSlide
		if end > len(lines) {
			end = len(lines)
		}
		groups = append(groups, lines[start:end])
	}
	if len(groups) == 0 {
		groups = [][]string{{emptyDocumentLine}}
	}
	return groups
}

// registerSlide adds slide n to the package: the slide part and its
// layout relationship, the content-types override, the presentation
// relationship and the slide-ID list entry.
func registerSlide(pkg *packageBuilder, presRels *relationships, sldIDs *strings.Builder, n int, lines []string) {
	path := fmt.Sprintf("ppt/slides/slide%d.xml", n)
	pkg.addPart(path,
		"application/vnd.openxmlformats-officedocument.presentationml.slide+xml",
		slideXML(n, lines))

	slideRels := &relationships{}
	slideRels.add(relSlideLayout, "../slideLayouts/slideLayout1.xml")
	pkg.addRels(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels)

	rid := presRels.add(relSlide, fmt.Sprintf("slides/slide%d.xml", n))
	fmt.Fprintf(sldIDs, `<p:sldId id="%d" r:id=%q/>`, 255+n, rid)
}

func slideXML(n int, lines []string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + presentationNS + `>`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	// Title placeholder.
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	fmt.Fprintf(&b, `<p:txBody><a:bodyPr/><a:p><a:r><a:t>PDF Slide %d</a:t></a:r></a:p></p:txBody></p:sp>`, n)

	// Body placeholder, one paragraph per line.
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Content"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/>`)
	for _, line := range lines {
		b.WriteString(`<a:p><a:r><a:t>`)
		b.WriteString(escapeXML(line))
		b.WriteString(`</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)

	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return []byte(b.String())
}

// addSlideMasterParts appends the fixed master/layout/theme triple every
// presentation needs once.
func addSlideMasterParts(pkg *packageBuilder) {
	pkg.addPart("ppt/slideMasters/slideMaster1.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml",
		[]byte(slideMasterXML))
	masterRels := &relationships{}
	masterRels.add(relSlideLayout, "../slideLayouts/slideLayout1.xml")
	masterRels.add(relTheme, "../theme/theme1.xml")
	pkg.addRels("ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels)

	pkg.addPart("ppt/slideLayouts/slideLayout1.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml",
		[]byte(slideLayoutXML))
	layoutRels := &relationships{}
	layoutRels.add(relSlideMaster, "../slideMasters/slideMaster1.xml")
	pkg.addRels("ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRels)

	pkg.addPart("ppt/theme/theme1.xml",
		"application/vnd.openxmlformats-officedocument.theme+xml",
		[]byte(themeXML))
}

const slideMasterXML = xmlHeader +
	`<p:sldMaster ` + presentationNS + `>` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" ` +
	`accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideLayoutXML = xmlHeader +
	`<p:sldLayout ` + presentationNS + `>` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const themeXML = xmlHeader +
	`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`
