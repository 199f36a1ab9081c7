package stream

import (
	"errors"
	"io"
	"strings"
)

var (
	ErrMaxTokenSizeExceeded = errors.New("max token size exceeded")
	ErrInvalidSplitter      = errors.New("invalid splitter")

	errInvalidSplitterFunc = func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		return 0, nil, ErrInvalidSplitter
	}
)

// tagSplitter cuts an XML byte stream on elements of one name. It tracks
// nesting depth textually, so it works on well-formed input without a
// parser in the loop.
type tagSplitter struct {
	tagName       string
	maxBufferSize int // threshold to start looking for complete elements
	maxTokenSize  int // hard limit for a single element
	buffer        []byte
}

// TagSplitter returns a bufio.SplitFunc that emits one token per element of
// the given name. An element larger than maxTokenSize is an error.
func TagSplitter(tagName string, maxBufferSize, maxTokenSize int) func(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(tagName) == 0 || maxBufferSize < 0 || maxTokenSize < 0 || maxTokenSize < maxBufferSize {
		return errInvalidSplitterFunc
	}
	splitter := &tagSplitter{
		tagName:       tagName,
		maxBufferSize: maxBufferSize,
		maxTokenSize:  maxTokenSize,
	}
	return splitter.split
}

func (s *tagSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// All input goes through the internal buffer, so a final read that
	// delivers data together with EOF keeps every trailing element.
	s.buffer = append(s.buffer, data...)
	advance = len(data)
	if !atEOF && len(s.buffer) < s.maxBufferSize {
		return advance, nil, nil
	}
	start, end := findFirstCompleteTag(string(s.buffer), s.tagName)
	switch {
	case start == -1:
		// No start tag anywhere, nothing worth keeping.
		s.buffer = s.buffer[:0]
		if atEOF {
			return advance, nil, io.EOF
		}
		return advance, nil, nil
	case end == -1:
		// Start tag without its close tag yet.
		if atEOF {
			s.buffer = nil
			return advance, nil, io.EOF
		}
		if len(s.buffer) > s.maxTokenSize {
			return 0, nil, ErrMaxTokenSizeExceeded
		}
		return advance, nil, nil
	default:
		token = s.buffer[start:end]
		s.buffer = s.buffer[end:]
		return advance, token, nil
	}
}

func isTagNameTerminator(ch byte) bool {
	switch ch {
	case '>', ' ', '/', '\n', '\t', '\r':
		return true
	}
	return false
}

// findFirstCompleteTag returns the bounds of the first complete element of
// the given name, or -1 where not found. The end index is -1 when a start
// tag is present but its matching close tag is not yet in the input.
func findFirstCompleteTag(input, tagName string) (start, end int) {
	var (
		openTag  = "<" + tagName
		closeTag = "</" + tagName + ">"
		i        = 0
	)
	for i < len(input) {
		openStart := strings.Index(input[i:], openTag)
		if openStart == -1 {
			return -1, -1
		}
		openStart += i
		// "<articleish" must not match tag "article".
		if tagNameEnd := openStart + len(openTag); tagNameEnd < len(input) {
			if !isTagNameTerminator(input[tagNameEnd]) {
				i = openStart + 1
				continue
			}
		}
		openEnd := strings.Index(input[openStart:], ">")
		if openEnd == -1 {
			return openStart, -1
		}
		openEnd += openStart
		if openEnd > 0 && input[openEnd-1] == '/' {
			// Self-closing element.
			return openStart, openEnd + 1
		}
		var (
			depth = 1
			j     = openEnd + 1
		)
		for j < len(input) && depth > 0 {
			var (
				nextOpen  = strings.Index(input[j:], openTag)
				nextClose = strings.Index(input[j:], closeTag)
			)
			if nextClose == -1 {
				return openStart, -1
			}
			if nextOpen != -1 && nextOpen < nextClose {
				nextOpen += j
				if tagNameEnd := nextOpen + len(openTag); tagNameEnd < len(input) {
					if isTagNameTerminator(input[tagNameEnd]) {
						depth++
						j = nextOpen + 1
						continue
					}
				}
				j = nextOpen + 1
			} else {
				nextClose += j
				depth--
				if depth == 0 {
					return openStart, nextClose + len(closeTag)
				}
				j = nextClose + len(closeTag)
			}
		}
		i = openEnd + 1
	}
	return -1, -1
}
