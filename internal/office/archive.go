package office

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Entry is one (path, content) pair inside an OOXML package.
type Entry struct {
	Path    string
	Content []byte
}

// relTypes used across the three package kinds.
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// contentTypes builds the [Content_Types].xml manifest. Every part added
// through a package builder registers its override here, which keeps the
// manifest and the entry set in lockstep.
type contentTypes struct {
	overrides []partOverride
}

type partOverride struct {
	partName    string
	contentType string
}

func (c *contentTypes) add(partName, contentType string) {
	c.overrides = append(c.overrides, partOverride{partName: partName, contentType: contentType})
}

func (c *contentTypes) render() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, o := range c.overrides {
		fmt.Fprintf(&b, `<Override PartName=%q ContentType=%q/>`, o.partName, o.contentType)
	}
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

// relationships builds one .rels part. IDs are assigned sequentially so a
// caller can interpolate the returned ID into its own XML.
type relationships struct {
	rels []relationship
}

type relationship struct {
	id     string
	typ    string
	target string
}

func (r *relationships) add(typ, target string) string {
	id := fmt.Sprintf("rId%d", len(r.rels)+1)
	r.rels = append(r.rels, relationship{id: id, typ: typ, target: target})
	return id
}

func (r *relationships) render() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, rel := range r.rels {
		fmt.Fprintf(&b, `<Relationship Id=%q Type=%q Target=%q/>`, rel.id, rel.typ, rel.target)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// packageBuilder accumulates the parts of one OOXML container and enforces
// the cross-reference closure between entries, content-type overrides and
// relationship targets.
type packageBuilder struct {
	entries []Entry
	types   contentTypes
	rootRel relationships
}

// addPart registers a content part together with its content-type override.
func (p *packageBuilder) addPart(path, contentType string, content []byte) {
	p.entries = append(p.entries, Entry{Path: path, Content: content})
	p.types.add("/"+path, contentType)
}

// addRels registers a .rels part; relationship parts carry no override
// (the rels Default extension covers them).
func (p *packageBuilder) addRels(path string, rels *relationships) {
	p.entries = append(p.entries, Entry{Path: path, Content: rels.render()})
}

// addMetadata appends the shared docProps parts and their root
// relationships.
func (p *packageBuilder) addMetadata(appName string) {
	p.addPart("docProps/core.xml",
		"application/vnd.openxmlformats-package.core-properties+xml", corePropsXML())
	p.addPart("docProps/app.xml",
		"application/vnd.openxmlformats-officedocument.extended-properties+xml", appPropsXML(appName))
	p.rootRel.add(relCoreProps, "docProps/core.xml")
	p.rootRel.add(relExtendedProps, "docProps/app.xml")
}

// finish verifies cross-reference closure, prepends the manifests and
// compresses the package.
func (p *packageBuilder) finish() ([]byte, error) {
	all := make([]Entry, 0, len(p.entries)+2)
	all = append(all, Entry{Path: "[Content_Types].xml", Content: p.types.render()})
	all = append(all, Entry{Path: "_rels/.rels", Content: p.rootRel.render()})
	all = append(all, p.entries...)

	if err := checkClosure(all, &p.types); err != nil {
		return nil, err
	}
	return writeArchive(all)
}

// checkClosure verifies that every content-type override points at an
// existing entry and that every non-rels XML part has an override.
func checkClosure(entries []Entry, types *contentTypes) error {
	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		present[e.Path] = struct{}{}
	}
	declared := make(map[string]struct{}, len(types.overrides))
	for _, o := range types.overrides {
		part := strings.TrimPrefix(o.partName, "/")
		declared[part] = struct{}{}
		if _, ok := present[part]; !ok {
			return fmt.Errorf("content type declared for missing part %s", o.partName)
		}
	}
	for _, e := range entries {
		if e.Path == "[Content_Types].xml" || strings.Contains(e.Path, "_rels") {
			continue
		}
		if _, ok := declared[e.Path]; !ok {
			return fmt.Errorf("part %s has no content type override", e.Path)
		}
	}
	return nil
}

// writeArchive compresses entries into a zip container. File headers carry
// no timestamps, which keeps output byte-identical across runs.
func writeArchive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.Path,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", e.Path, err)
		}
		if _, err := w.Write(e.Content); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", e.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func corePropsXML() []byte {
	return []byte(xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:title>Converted document</dc:title>` +
		`<dc:creator>pdfconvert</dc:creator>` +
		`</cp:coreProperties>`)
}

func appPropsXML(appName string) []byte {
	return []byte(xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>` + escapeXML(appName) + `</Application>` +
		`</Properties>`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
