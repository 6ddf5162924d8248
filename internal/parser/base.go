package parser

import (
	"pvillar/hogarfin/internal/logging"
)

// BaseParser provides the logger plumbing shared by all parser
// implementations. Parsers embed it:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger. A nil logger
// falls back to the shared root logger.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}
