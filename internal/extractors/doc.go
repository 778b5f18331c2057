// Package extractors provides implementations of the Extractor interface
// for the accepted document formats. Each extractor knows how to turn the
// bytes of one format into plain text.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
