package pagedesc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/glyphtab/model"
	"golang.org/x/net/html"
)

// Page is the parsed content of one page description
type Page struct {
	// Glyphs maps glyph ids to their path data
	Glyphs model.GlyphPathDictionary

	// Instructions are the character uses of the drawing region in document order
	Instructions []model.Instruction
}

// Parse extracts the glyph dictionary and the instruction list from a page
// description. Failures wrap model.ErrMalformedDescription.
func Parse(desc string) (*Page, error) {
	doc, err := html.Parse(strings.NewReader(desc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedDescription, err)
	}

	defs := findElement(doc, "defs", nil)
	if defs == nil {
		return nil, fmt.Errorf("%w: no definitions region", model.ErrMalformedDescription)
	}
	drawing := findElement(doc, "g", defs)
	if drawing == nil {
		return nil, fmt.Errorf("%w: no drawing region", model.ErrMalformedDescription)
	}

	page := &Page{Glyphs: make(model.GlyphPathDictionary)}
	collectPaths(defs, page.Glyphs)

	if err := collectUses(drawing, &page.Instructions); err != nil {
		return nil, err
	}

	tracer().Debugf("page description: %d glyphs, %d instructions", len(page.Glyphs), len(page.Instructions))
	return page, nil
}

// findElement returns the first element named tagName in document order,
// not descending into skip.
func findElement(n *html.Node, tagName string, skip *html.Node) *html.Node {
	if n == skip {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName, skip); found != nil {
			return found
		}
	}
	return nil
}

// collectPaths adds every path with an id and path data below n. A repeated
// id replaces the earlier entry.
func collectPaths(n *html.Node, glyphs model.GlyphPathDictionary) {
	if n.Type == html.ElementNode && n.Data == "path" {
		id, hasID := getAttr(n, "id")
		d, hasD := getAttr(n, "d")
		if hasID && hasD {
			glyphs[id] = d
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPaths(c, glyphs)
	}
}

// collectUses appends one instruction per complete use element below n,
// including uses inside nested groups.
func collectUses(n *html.Node, instrs *[]model.Instruction) error {
	if n.Type == html.ElementNode && n.Data == "use" {
		instr, ok, err := parseUse(n)
		if err != nil {
			return err
		}
		if ok {
			*instrs = append(*instrs, instr)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectUses(c, instrs); err != nil {
			return err
		}
	}
	return nil
}

// parseUse converts a use element. ok is false for uses lacking one of the
// text, reference or transform attributes; those are not chart content.
func parseUse(n *html.Node) (instr model.Instruction, ok bool, err error) {
	text, hasText := getAttr(n, "data-text")
	href, hasHref := getAttr(n, "xlink:href")
	transform, hasTransform := getAttr(n, "transform")
	if !hasText || !hasHref || !hasTransform || !strings.HasPrefix(href, "#") {
		tracer().Debugf("skipping incomplete use element")
		return model.Instruction{}, false, nil
	}

	decoded, err := DecodeText(text)
	if err != nil {
		return model.Instruction{}, false, err
	}
	m, err := ParseTransform(transform)
	if err != nil {
		return model.Instruction{}, false, err
	}

	return model.Instruction{
		Text:      decoded,
		GlyphRef:  href[1:],
		Transform: m,
	}, true, nil
}

// getAttr looks up an attribute by name. Namespaced attributes are matched
// as "ns:key" so xlink:href is found inside and outside SVG content.
func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if key == name {
			return a.Val, true
		}
	}
	return "", false
}

// DecodeText trims the character text of a use element and resolves a
// numeric character reference (&#xHHHH; or &#DDDD;) to the literal character.
func DecodeText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "&#") {
		return s, nil
	}

	ref := strings.TrimSuffix(s[2:], ";")
	base := 10
	if strings.HasPrefix(ref, "x") || strings.HasPrefix(ref, "X") {
		ref = ref[1:]
		base = 16
	}

	cp, err := strconv.ParseUint(ref, base, 32)
	if err != nil {
		return "", fmt.Errorf("%w: character reference %q", model.ErrMalformedDescription, s)
	}
	r := rune(cp)
	if !isScalar(r) {
		return "", fmt.Errorf("%w: character reference %q is not a scalar value", model.ErrMalformedDescription, s)
	}
	return string(r), nil
}

func isScalar(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && (r < 0xD800 || r > 0xDFFF)
}

// ParseTransform parses "matrix(a,b,c,d,e,f)" into a Matrix.
func ParseTransform(s string) (model.Matrix, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "matrix(") || !strings.HasSuffix(s, ")") {
		return model.Matrix{}, fmt.Errorf("%w: transform %q is not a matrix", model.ErrMalformedDescription, s)
	}

	parts := strings.Split(s[len("matrix("):len(s)-1], ",")
	if len(parts) != 6 {
		return model.Matrix{}, fmt.Errorf("%w: transform %q has %d components, want 6",
			model.ErrMalformedDescription, s, len(parts))
	}

	var m model.Matrix
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Matrix{}, fmt.Errorf("%w: transform component %q", model.ErrMalformedDescription, p)
		}
		m[i] = v
	}
	return m, nil
}
