package xlsx

import "encoding/xml"

// Element names are matched by local name, so the spreadsheetml, drawingml
// and relationship namespaces need no declaration here.

// workbookXML represents xl/workbook.xml.
type workbookXML struct {
	XMLName xml.Name      `xml:"workbook"`
	Sheets  []sheetRefXML `xml:"sheets>sheet"`
}

type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"` // r:id
}

// worksheetXML represents xl/worksheets/sheet*.xml.
type worksheetXML struct {
	XMLName    xml.Name       `xml:"worksheet"`
	Cols       []colXML       `xml:"cols>col"`
	Rows       []rowXML       `xml:"sheetData>row"`
	MergeCells []mergeCellXML `xml:"mergeCells>mergeCell"`
	Drawing    *drawingRefXML `xml:"drawing"`
}

type colXML struct {
	Min   int     `xml:"min,attr"`
	Max   int     `xml:"max,attr"`
	Width float64 `xml:"width,attr"`
}

type rowXML struct {
	R      int       `xml:"r,attr"`  // 1-based
	Height float64   `xml:"ht,attr"` // points
	Cells  []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"`
	T  string        `xml:"t,attr"` // s, str, inlineStr, n, b, e
	S  int           `xml:"s,attr"`
	V  string        `xml:"v"`
	Is *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	T string `xml:"t"`
	R []rXML `xml:"r"`
}

type mergeCellXML struct {
	Ref string `xml:"ref,attr"`
}

type drawingRefXML struct {
	RID string `xml:"id,attr"` // r:id
}

// sharedStringsXML represents xl/sharedStrings.xml.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T string `xml:"t"`
	R []rXML `xml:"r"` // rich text runs
}

type rXML struct {
	T string `xml:"t"`
}

// relationshipsXML represents a .rels part.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// drawingXML represents xl/drawings/drawing*.xml.
type drawingXML struct {
	XMLName xml.Name    `xml:"wsDr"`
	TwoCell []anchorXML `xml:"twoCellAnchor"`
	OneCell []anchorXML `xml:"oneCellAnchor"`
}

type anchorXML struct {
	From *markerXML `xml:"from"`
	Pic  *picXML    `xml:"pic"`
}

type markerXML struct {
	Col int `xml:"col"`
	Row int `xml:"row"`
}

type picXML struct {
	Props nvPropsXML `xml:"nvPicPr>cNvPr"`
	Blip  blipXML    `xml:"blipFill>blip"`
}

type nvPropsXML struct {
	Name string `xml:"name,attr"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"` // r:embed
}
