package pptx

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// slideRelBase is the first presentation relationship ID used by slides.
const slideRelBase = 7

const (
	firstSlideID  = 256
	slideMasterID = 2147483648

	notesWidth  = 6858000
	notesHeight = 9144000

	bulletIndent = 285750
	textInset    = 91440
)

func presentationXML(slides int, width, height int64) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`,
		nsDrawing, nsRelationship, nsPresentation)
	fmt.Fprintf(&b, `<p:sldMasterIdLst><p:sldMasterId id="%d" r:id="rId1"/></p:sldMasterIdLst>`, slideMasterID)
	b.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId6"/></p:notesMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slides; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, slideRelBase+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, width, height)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, notesWidth, notesHeight)
	b.WriteString(`<p:defaultTextStyle/></p:presentation>`)
	return []byte(b.String())
}

func slideXML(slide domain.Slide) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld>`, nsDrawing, nsRelationship, nsPresentation)
	if slide.Background != nil {
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`,
			escape(string(*slide.Background)))
	}
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	for i, shape := range slide.Shapes {
		id := i + 2
		if shape.Kind == domain.ShapeTable && shape.Table != nil {
			writeTable(&b, id, shape)
			continue
		}
		writeShape(&b, id, shape)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return []byte(b.String())
}

func writeShape(b *strings.Builder, id int, shape domain.Shape) {
	name := shape.Name
	if name == "" {
		name = fmt.Sprintf("Shape %d", id)
	}
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/>`, id, escape(name))
	if shape.Kind == domain.ShapeText {
		b.WriteString(`<p:cNvSpPr txBox="1"/>`)
	} else {
		b.WriteString(`<p:cNvSpPr/>`)
	}
	b.WriteString(`<p:nvPr/></p:nvSpPr><p:spPr>`)
	writeXfrm(b, "a:xfrm", shape.Frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if shape.Fill != nil {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escape(string(*shape.Fill)))
	} else {
		b.WriteString(`<a:noFill/>`)
	}
	b.WriteString(`<a:ln><a:noFill/></a:ln></p:spPr>`)

	anchor := shape.Anchor
	if anchor == "" {
		anchor = domain.AnchorTop
	}
	fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="square" lIns="%d" tIns="%d" rIns="%d" bIns="%d" anchor="%s"><a:normAutofit/></a:bodyPr><a:lstStyle/>`,
		textInset, textInset/2, textInset, textInset/2, anchor)
	if len(shape.Paragraphs) == 0 {
		b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	for _, para := range shape.Paragraphs {
		writeParagraph(b, para)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeXfrm(b *strings.Builder, tag string, r domain.Rect) {
	fmt.Fprintf(b, `<%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s>`, tag, r.X, r.Y, r.W, r.H, tag)
}

func writeParagraph(b *strings.Builder, para domain.Paragraph) {
	align := para.Align
	if align == "" {
		align = domain.AlignLeft
	}
	if para.Bullet {
		fmt.Fprintf(b, `<a:p><a:pPr marL="%d" indent="%d" algn="%s"><a:buFont typeface="Arial"/><a:buChar char="•"/></a:pPr>`,
			bulletIndent, -bulletIndent, align)
	} else {
		fmt.Fprintf(b, `<a:p><a:pPr algn="%s"><a:buNone/></a:pPr>`, align)
	}
	for _, run := range para.Runs {
		writeRun(b, run)
	}
	if len(para.Runs) == 0 {
		b.WriteString(`<a:endParaRPr lang="en-US"/>`)
	}
	b.WriteString(`</a:p>`)
}

func writeRun(b *strings.Builder, run domain.Run) {
	b.WriteString(`<a:r><a:rPr lang="en-US" dirty="0"`)
	if run.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, run.Size*100)
	}
	if run.Bold {
		b.WriteString(` b="1"`)
	}
	if run.Italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(`>`)
	if run.Color != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escape(string(run.Color)))
	}
	fmt.Fprintf(b, `</a:rPr><a:t>%s</a:t></a:r>`, escape(run.Text))
}

func writeTable(b *strings.Builder, id int, shape domain.Shape) {
	t := shape.Table
	name := shape.Name
	if name == "" {
		name = fmt.Sprintf("Table %d", id)
	}
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/>`, id, escape(name))
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	writeXfrm(b, "p:xfrm", shape.Frame)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`)

	widths := columnWidths(t, shape.Frame.W)
	for _, w := range widths {
		fmt.Fprintf(b, `<a:gridCol w="%d"/>`, w)
	}
	b.WriteString(`</a:tblGrid>`)

	rowHeight := int64(0)
	if len(t.Rows) > 0 {
		rowHeight = shape.Frame.H / int64(len(t.Rows))
	}
	for r, row := range t.Rows {
		fmt.Fprintf(b, `<a:tr h="%d">`, rowHeight)
		for c := range widths {
			text := ""
			if c < len(row) {
				text = row[c].Text
			}
			header := r == 0
			color, fill := t.BodyColor, domain.Color("")
			switch {
			case header:
				color, fill = t.HeaderColor, t.HeaderFill
			case r%2 == 0:
				fill = t.BandFill
			}
			writeCell(b, text, t.FontSize, header, color, fill)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

// columnWidths pads or derives the grid so every row has a column.
func columnWidths(t *domain.Table, frameWidth int64) []int64 {
	cols := len(t.ColumnWidths)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}
	widths := make([]int64, cols)
	copy(widths, t.ColumnWidths)
	for i := len(t.ColumnWidths); i < cols; i++ {
		widths[i] = frameWidth / int64(cols)
	}
	return widths
}

func writeCell(b *strings.Builder, text string, size int, bold bool, color, fill domain.Color) {
	b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" dirty="0"`)
	if size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, size*100)
	}
	if bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(`>`)
	if color != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escape(string(color)))
	}
	fmt.Fprintf(b, `</a:rPr><a:t>%s</a:t></a:r></a:p></a:txBody><a:tcPr anchor="ctr">`, escape(text))
	if fill != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, escape(string(fill)))
	}
	b.WriteString(`</a:tcPr></a:tc>`)
}

func notesXML(notes string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&b, `<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld><p:spTree>`, nsDrawing, nsRelationship, nsPresentation)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, line := range strings.Split(notes, "\n") {
		if line == "" {
			b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
			continue
		}
		fmt.Fprintf(&b, `<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>%s</a:t></a:r></a:p>`, escape(line))
	}
	b.WriteString(`</p:txBody></p:sp></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	return []byte(b.String())
}
