package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/slidemaker/internal/infrastructure/render/layout"
)

const (
	emuPerInch = 914400
	emuPerPt   = 12700

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

	nsA   = `http://schemas.openxmlformats.org/drawingml/2006/main`
	nsR   = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	nsP   = `http://schemas.openxmlformats.org/presentationml/2006/main`
	nsRel = `http://schemas.openxmlformats.org/package/2006/relationships`

	relOfficeDocument = nsR + `/officeDocument`
	relCoreProps      = `http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties`
	relAppProps       = nsR + `/extended-properties`
	relSlideMaster    = nsR + `/slideMaster`
	relSlideLayout    = nsR + `/slideLayout`
	relSlide          = nsR + `/slide`
	relTheme          = nsR + `/theme`
	relPresProps      = nsR + `/presProps`
	relViewProps      = nsR + `/viewProps`
	relTableStyles    = nsR + `/tableStyles`
	relNotesMaster    = nsR + `/notesMaster`
	relNotesSlide     = nsR + `/notesSlide`

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctNotesMaster  = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctAppProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	firstSlideRelID = 10
)

var (
	slideCX = emu(layout.PageWidth)
	slideCY = emu(layout.PageHeight)
)

func emu(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func contentTypesXML(parts []part) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, p := range parts {
		if p.contentType == "" {
			continue
		}
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, p.name, p.contentType)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

type relationship struct {
	id     string
	typ    string
	target string
}

func relsXML(rels ...relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsRel)
	for _, rel := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, rel.id, rel.typ, rel.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func rootRelsXML() string {
	return relsXML(
		relationship{"rId1", relOfficeDocument, "ppt/presentation.xml"},
		relationship{"rId2", relCoreProps, "docProps/core.xml"},
		relationship{"rId3", relAppProps, "docProps/app.xml"},
	)
}

func corePropsXML(title string, created time.Time) string {
	stamp := created.Format(time.RFC3339)
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(title) + `</dc:title>` +
		`<dc:subject>` + escape(subject) + `</dc:subject>` +
		`<dc:creator>` + productName + `</dc:creator>` +
		`<cp:lastModifiedBy>` + productName + `</cp:lastModifiedBy>` +
		`<cp:revision>1</cp:revision>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appPropsXML(plan layout.RenderPlan, notesCount int) string {
	slideCount := len(plan.Slides)

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	b.WriteString(`<Application>` + productName + `</Application>`)
	b.WriteString(`<PresentationFormat>On-screen Show (16:9)</PresentationFormat>`)
	fmt.Fprintf(&b, `<Slides>%d</Slides><Notes>%d</Notes><HiddenSlides>0</HiddenSlides><MMClips>0</MMClips>`, slideCount, notesCount)
	b.WriteString(`<ScaleCrop>false</ScaleCrop>`)
	fmt.Fprintf(&b, `<HeadingPairs><vt:vector size="2" baseType="variant"><vt:variant><vt:lpstr>Slide Titles</vt:lpstr></vt:variant><vt:variant><vt:i4>%d</vt:i4></vt:variant></vt:vector></HeadingPairs>`, slideCount)
	fmt.Fprintf(&b, `<TitlesOfParts><vt:vector size="%d" baseType="lpstr">`, slideCount)
	for _, slide := range plan.Slides {
		b.WriteString(`<vt:lpstr>` + escape(slideTitle(slide)) + `</vt:lpstr>`)
	}
	b.WriteString(`</vt:vector></TitlesOfParts>`)
	b.WriteString(`<LinksUpToDate>false</LinksUpToDate><SharedDoc>false</SharedDoc><HyperlinksChanged>false</HyperlinksChanged>`)
	b.WriteString(`<AppVersion>16.0000</AppVersion>`)
	b.WriteString(`</Properties>`)
	return b.String()
}

func slideTitle(slide layout.SlidePlan) string {
	for _, box := range slide.Boxes {
		if box.Name == "Title" && len(box.Paragraphs) > 0 {
			return box.Paragraphs[0].Text
		}
	}
	return ""
}

func presentationXML(slideCount int, withNotes bool) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if withNotes {
		b.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId6"/></p:notesMasterIdLst>`)
	}
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRelID+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideCX, slideCY)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`<p:defaultTextStyle/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slideCount int, withNotes bool) string {
	rels := []relationship{
		{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"},
		{"rId2", relTheme, "theme/theme1.xml"},
		{"rId3", relPresProps, "presProps.xml"},
		{"rId4", relViewProps, "viewProps.xml"},
		{"rId5", relTableStyles, "tableStyles.xml"},
	}
	if withNotes {
		rels = append(rels, relationship{"rId6", relNotesMaster, "notesMasters/notesMaster1.xml"})
	}
	for i := 0; i < slideCount; i++ {
		rels = append(rels, relationship{
			id:     "rId" + strconv.Itoa(firstSlideRelID+i),
			typ:    relSlide,
			target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return relsXML(rels...)
}

func presPropsXML() string {
	return xmlHeader + fmt.Sprintf(`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`, nsA, nsR, nsP)
}

func viewPropsXML() string {
	return xmlHeader + fmt.Sprintf(`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP) +
		`<p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr>` +
		`<p:gridSpacing cx="76200" cy="76200"/>` +
		`</p:viewPr>`
}

func tableStylesXML() string {
	return xmlHeader + fmt.Sprintf(`<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsA)
}

const groupShapeHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const masterColorMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

func slideMasterXML(master layout.Master) string {
	bar := master.AccentBar
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, master.Background)
	b.WriteString(`<p:spTree>`)
	b.WriteString(groupShapeHeader)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Accent Bar"/><p:cNvSpPr/><p:nvPr userDrawn="1"/></p:nvSpPr>`)
	fmt.Fprintf(&b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, emu(bar.X), emu(bar.Y), emu(bar.W), emu(bar.H))
	fmt.Fprintf(&b, `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`, master.Accent)
	b.WriteString(`</p:sp>`)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(masterColorMap)
	b.WriteString(`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`)
	b.WriteString(`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>`)
	b.WriteString(`</p:sldMaster>`)
	return b.String()
}

func slideMasterRelsXML() string {
	return relsXML(
		relationship{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
		relationship{"rId2", relTheme, "../theme/theme1.xml"},
	)
}

func slideLayoutXML() string {
	return xmlHeader +
		fmt.Sprintf(`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">`, nsA, nsR, nsP) +
		`<p:cSld name="Blank"><p:spTree>` + groupShapeHeader + `</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		`</p:sldLayout>`
}

func slideLayoutRelsXML() string {
	return relsXML(relationship{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"})
}

func slideXML(slide layout.SlidePlan) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(groupShapeHeader)
	for i, box := range slide.Boxes {
		writeTextBox(&b, i+2, box)
	}
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeTextBox(b *strings.Builder, id int, box layout.TextBox) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, escape(box.Name))
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, emu(box.Box.X), emu(box.Box.Y), emu(box.Box.W), emu(box.Box.H))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720" rtlCol="0" anchor="%s"><a:noAutofit/></a:bodyPr><a:lstStyle/>`, box.Anchor)
	if len(box.Paragraphs) == 0 {
		fmt.Fprintf(b, `<a:p><a:pPr algn="%s"/><a:endParaRPr lang="en-US" sz="%d" dirty="0"/></a:p>`, box.Align, hundredths(box.SizePt))
	}
	for _, paragraph := range box.Paragraphs {
		writeParagraph(b, box, paragraph)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraph(b *strings.Builder, box layout.TextBox, paragraph layout.Paragraph) {
	if paragraph.Bullet {
		indent := emu(0.3125)
		fmt.Fprintf(b, `<a:p><a:pPr marL="%d" indent="-%d" algn="%s">`, indent, indent, box.Align)
	} else {
		fmt.Fprintf(b, `<a:p><a:pPr algn="%s">`, box.Align)
	}
	if paragraph.SpaceAfterPt > 0 {
		fmt.Fprintf(b, `<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, hundredths(paragraph.SpaceAfterPt))
	}
	if paragraph.Bullet {
		fmt.Fprintf(b, `<a:buClr><a:srgbClr val="%s"/></a:buClr><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>`, paragraph.BulletColor)
	} else {
		b.WriteString(`<a:buNone/>`)
	}
	b.WriteString(`</a:pPr>`)

	runProps := runPropsXML(box)
	for i, line := range strings.Split(paragraph.Text, "\n") {
		if i > 0 {
			b.WriteString(`<a:br>` + runProps + `</a:br>`)
		}
		b.WriteString(`<a:r>` + runProps + `<a:t>` + escape(strings.TrimRight(line, "\r")) + `</a:t></a:r>`)
	}
	b.WriteString(`</a:p>`)
}

func runPropsXML(box layout.TextBox) string {
	bold := ""
	if box.Bold {
		bold = ` b="1"`
	}
	return fmt.Sprintf(
		`<a:rPr lang="en-US" sz="%d"%s dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:latin typeface="%s"/><a:cs typeface="%s"/></a:rPr>`,
		hundredths(box.SizePt), bold, box.Color, escape(box.FontFace), escape(box.FontFace),
	)
}

func hundredths(pt float64) int {
	return int(math.Round(pt * 100))
}

func slideRelsXML(number int, withNotes bool) string {
	rels := []relationship{{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"}}
	if withNotes {
		rels = append(rels, relationship{"rId2", relNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", number)})
	}
	return relsXML(rels...)
}

func notesMasterXML() string {
	return xmlHeader +
		fmt.Sprintf(`<p:notesMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP) +
		`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + groupShapeHeader +
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr><p:nvPr><p:ph type="sldImg" idx="2"/></p:nvPr></p:nvSpPr>` +
		`<p:spPr><a:xfrm><a:off x="381000" y="685800"/><a:ext cx="6096000" cy="3429000"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr></p:sp>` +
		`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" sz="quarter" idx="3"/></p:nvPr></p:nvSpPr>` +
		`<p:spPr><a:xfrm><a:off x="685800" y="4343400"/><a:ext cx="5486400" cy="4114800"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>` +
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>` +
		`</p:spTree></p:cSld>` +
		masterColorMap +
		`<p:notesStyle/>` +
		`</p:notesMaster>`
}

func notesMasterRelsXML() string {
	return relsXML(relationship{"rId1", relTheme, "../theme/theme2.xml"})
}

func notesSlideXML(notes string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(groupShapeHeader)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, line := range strings.Split(strings.TrimSpace(notes), "\n") {
		b.WriteString(`<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>` + escape(strings.TrimRight(line, "\r")) + `</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:notes>`)
	return b.String()
}

func notesSlideRelsXML(number int) string {
	return relsXML(
		relationship{"rId1", relNotesMaster, "../notesMasters/notesMaster1.xml"},
		relationship{"rId2", relSlide, fmt.Sprintf("../slides/slide%d.xml", number)},
	)
}

func themeXML(tokens layout.Tokens) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<a:theme xmlns:a="%s" name="SlideMaker">`, nsA)
	b.WriteString(`<a:themeElements>`)
	b.WriteString(`<a:clrScheme name="SlideMaker">`)
	fmt.Fprintf(&b, `<a:dk1><a:srgbClr val="%s"/></a:dk1>`, "000000")
	fmt.Fprintf(&b, `<a:lt1><a:srgbClr val="%s"/></a:lt1>`, "FFFFFF")
	fmt.Fprintf(&b, `<a:dk2><a:srgbClr val="%s"/></a:dk2>`, "1E293B")
	fmt.Fprintf(&b, `<a:lt2><a:srgbClr val="%s"/></a:lt2>`, "E2E8F0")
	fmt.Fprintf(&b, `<a:accent1><a:srgbClr val="%s"/></a:accent1>`, tokens.Accent)
	fmt.Fprintf(&b, `<a:accent2><a:srgbClr val="%s"/></a:accent2>`, tokens.SlideNumber)
	b.WriteString(`<a:accent3><a:srgbClr val="EC4899"/></a:accent3>`)
	b.WriteString(`<a:accent4><a:srgbClr val="22C55E"/></a:accent4>`)
	b.WriteString(`<a:accent5><a:srgbClr val="F59E0B"/></a:accent5>`)
	b.WriteString(`<a:accent6><a:srgbClr val="0EA5E9"/></a:accent6>`)
	b.WriteString(`<a:hlink><a:srgbClr val="6366F1"/></a:hlink>`)
	b.WriteString(`<a:folHlink><a:srgbClr val="8B5CF6"/></a:folHlink>`)
	b.WriteString(`</a:clrScheme>`)
	b.WriteString(`<a:fontScheme name="SlideMaker">`)
	b.WriteString(`<a:majorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`)
	b.WriteString(`<a:minorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`)
	b.WriteString(`</a:fontScheme>`)
	b.WriteString(`<a:fmtScheme name="SlideMaker">`)
	b.WriteString(`<a:fillStyleLst>`)
	b.WriteString(strings.Repeat(`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`, 3))
	b.WriteString(`</a:fillStyleLst>`)
	b.WriteString(`<a:lnStyleLst>`)
	b.WriteString(strings.Repeat(`<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>`, 3))
	b.WriteString(`</a:lnStyleLst>`)
	b.WriteString(`<a:effectStyleLst>`)
	b.WriteString(strings.Repeat(`<a:effectStyle><a:effectLst/></a:effectStyle>`, 3))
	b.WriteString(`</a:effectStyleLst>`)
	b.WriteString(`<a:bgFillStyleLst>`)
	b.WriteString(strings.Repeat(`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`, 3))
	b.WriteString(`</a:bgFillStyleLst>`)
	b.WriteString(`</a:fmtScheme>`)
	b.WriteString(`</a:themeElements>`)
	b.WriteString(`<a:objectDefaults/><a:extraClrSchemeLst/>`)
	b.WriteString(`</a:theme>`)
	return b.String()
}
