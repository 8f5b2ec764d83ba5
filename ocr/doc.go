// Package ocr checks rendered chart glyphs with optical character
// recognition.
//
// Recognition wraps the Tesseract engine via gosseract and is only compiled
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract and its Chinese language data to be installed. On
// macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim tesseract-ocr-chi-tra
//
// Without the tag every constructor returns [ErrOCRNotEnabled]. [Verify]
// works with any [Recognizer], so its logic is available in both builds.
package ocr
