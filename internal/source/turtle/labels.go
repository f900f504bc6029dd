// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package turtle

import (
	"bytes"
	"regexp"
	"strings"
)

// The parser names unlabelled blank nodes "b1", "b2", ... in the same space
// as document labels, so "[ ]" and "_:b1" would collide. Document labels are
// tagged with labelMark before parsing and restored afterwards. Generated
// names get generatedMark, which cannot occur in a blank node label.
const (
	labelMark     = "x"
	generatedMark = "[]"
)

// blankLocal maps a parsed blank node name back to a document-unique local id.
func blankLocal(name string) string {
	if rest, ok := strings.CutPrefix(name, labelMark); ok {
		return rest
	}
	return generatedMark + name
}

// markTurtleLabels prefixes every "_:label" outside IRIs, strings and comments.
func markTurtleLabels(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/64)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '<':
			end := bytes.IndexByte(src[i:], '>')
			if end < 0 {
				return append(out, src[i:]...)
			}
			out = append(out, src[i:i+end+1]...)
			i += end + 1
		case c == '#':
			end := bytes.IndexAny(src[i:], "\r\n")
			if end < 0 {
				return append(out, src[i:]...)
			}
			out = append(out, src[i:i+end]...)
			i += end
		case c == '"' || c == '\'':
			n := skipString(src, i)
			out = append(out, src[i:n]...)
			i = n
		case c == '\\' && i+1 < len(src):
			out = append(out, src[i:i+2]...)
			i += 2
		case c == '_' && i+1 < len(src) && src[i+1] == ':' && (i == 0 || !isNameByte(src[i-1])):
			out = append(out, "_:"+labelMark...)
			i += 2
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

// skipString returns the index just past the string literal opening at i.
func skipString(src []byte, i int) int {
	q := src[i]
	long := i+2 < len(src) && src[i+1] == q && src[i+2] == q
	if long {
		i += 3
	} else {
		i++
	}
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
		case c == q && !long:
			return i + 1
		case c == q && i+2 < len(src) && src[i+1] == q && src[i+2] == q:
			// A run longer than three ends with the terminator.
			for i < len(src) && src[i] == q {
				i++
			}
			return i
		case (c == '\n' || c == '\r') && !long:
			return i
		default:
			i++
		}
	}
	return len(src)
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == ':', c == '%', c >= 0x80:
		return true
	}
	return false
}

var nodeIDAttr = regexp.MustCompile(`(\bnodeID\s*=\s*["'])`)

// markXMLLabels prefixes every rdf:nodeID attribute value.
func markXMLLabels(src []byte) []byte {
	return nodeIDAttr.ReplaceAll(src, []byte("${1}"+labelMark))
}
