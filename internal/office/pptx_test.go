package office

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestGroupSlides(t *testing.T) {
	t.Run("TwelveLinesPerSlide", func(t *testing.T) {
		groups := groupSlides(numberedLines(30))
		require.Len(t, groups, 3)
		assert.Len(t, groups[0], 12)
		assert.Len(t, groups[1], 12)
		assert.Len(t, groups[2], 6)
	})

	t.Run("SlideCapDropsOverflow", func(t *testing.T) {
		groups := groupSlides(numberedLines(400))
		require.Len(t, groups, maxSlides)
		for _, g := range groups {
			assert.Len(t, g, maxLinesPerSlide)
		}
	})

	t.Run("EmptyInputGetsSentinelSlide", func(t *testing.T) {
		groups := groupSlides(nil)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{emptyDocumentLine}, groups[0])
	})
}

func TestBuildPowerPoint(t *testing.T) {
	t.Run("SlideCountsAgreeEverywhere", func(t *testing.T) {
		data, err := Build(KindPowerPoint, numberedLines(30))
		require.NoError(t, err)
		parts := readArchive(t, data)

		slideParts := 0
		for name := range parts {
			if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
				slideParts++
			}
		}
		assert.Equal(t, 3, slideParts)
		assert.Equal(t, 3, strings.Count(parts["[Content_Types].xml"],
			"presentationml.slide+xml"))
		assert.Equal(t, 3, strings.Count(parts["ppt/presentation.xml"], "<p:sldId "))
		assert.Equal(t, 3, strings.Count(parts["ppt/_rels/presentation.xml.rels"],
			"relationships/slide\""))
	})

	t.Run("SlideContent", func(t *testing.T) {
		data, err := Build(KindPowerPoint, []string{"alpha point", "beta point"})
		require.NoError(t, err)
		parts := readArchive(t, data)
		slide := parts["ppt/slides/slide1.xml"]
		assert.Contains(t, slide, "PDF Slide 1")
		assert.Contains(t, slide, "<a:t>alpha point</a:t>")
		assert.Contains(t, slide, "<a:t>beta point</a:t>")
		assert.Contains(t, slide, `<p:ph type="title"/>`)
		assert.Contains(t, slide, `<p:ph type="body" idx="1"/>`)
	})

	t.Run("MasterLayoutThemePresent", func(t *testing.T) {
		data, err := Build(KindPowerPoint, []string{"single line"})
		require.NoError(t, err)
		parts := readArchive(t, data)
		assert.Contains(t, parts, "ppt/slideMasters/slideMaster1.xml")
		assert.Contains(t, parts, "ppt/slideLayouts/slideLayout1.xml")
		assert.Contains(t, parts, "ppt/theme/theme1.xml")
		assert.Contains(t, parts, "ppt/slideMasters/_rels/slideMaster1.xml.rels")
		assert.Contains(t, parts["ppt/presentation.xml"], "<p:sldMasterIdLst>")
	})

	t.Run("SlideCapHonored", func(t *testing.T) {
		data, err := Build(KindPowerPoint, numberedLines(600))
		require.NoError(t, err)
		parts := readArchive(t, data)
		assert.Contains(t, parts, fmt.Sprintf("ppt/slides/slide%d.xml", maxSlides))
		assert.NotContains(t, parts, fmt.Sprintf("ppt/slides/slide%d.xml", maxSlides+1))
		assert.Equal(t, maxSlides, strings.Count(parts["ppt/presentation.xml"], "<p:sldId "))
	})

	t.Run("SlideRelsPointAtLayout", func(t *testing.T) {
		data, err := Build(KindPowerPoint, []string{"one line"})
		require.NoError(t, err)
		parts := readArchive(t, data)
		assert.Contains(t, parts["ppt/slides/_rels/slide1.xml.rels"],
			"../slideLayouts/slideLayout1.xml")
	})
}
