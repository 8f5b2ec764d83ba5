// Package pagedesc reads the vector description of one chart page.
//
// A page description is an SVG document as written by a PDF vectorizer in
// "text as path" mode. Glyph outlines live in the definitions region:
//
//	<defs>
//	  <path id="font_1_12" d="M .5 .1 L ..."/>
//	</defs>
//
// and every drawn character is a use element in the drawing region that
// references one of those outlines and places it with an affine transform:
//
//	<g>
//	  <use data-text="&#x4e00;" xlink:href="#font_1_12" transform="matrix(24,0,0,-24,80,120)"/>
//	</g>
//
// [Parse] returns both parts as a [Page]. The glyph dictionary is built once
// and only read afterwards; instructions keep document order.
package pagedesc

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphtab.pagedesc'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.pagedesc")
}
