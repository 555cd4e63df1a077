// Package ocr is the recognition adapter: it turns image bytes into text
// using the Tesseract OCR engine (via gosseract/v2).
//
// # Prerequisites
//
// Tesseract and its English training data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng libtesseract-dev
//   - macOS: brew install tesseract
//
// A non-standard tessdata directory can be supplied with Config.TessdataPrefix.
//
// # Recognition Modes
//
// Strict mode restricts Tesseract to the characters an arithmetic expression
// can contain ("0123456789+-*/=(). ") and uses page segmentation mode 6, which
// treats the crop as one uniform block of text. Loose mode passes no
// configuration and lets Tesseract recognise anything.
//
// Recognition is best effort. Misread characters are not an error here; they
// surface later when the text fails to evaluate. Recognize only fails when the
// engine cannot process the input at all (corrupt image, missing language data).
//
// # Thread Safety
//
// A gosseract client is not safe for concurrent use, so Tesseract creates a
// fresh client for every call. Concurrent Recognize calls are safe; bounding
// how many run at once is the caller's job.
package ocr
