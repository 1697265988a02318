package equivalence

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/clbanning/mxj/v2"
)

const (
	seqKey  = "#seq"
	textKey = "#text"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// readMarkupDocument decodes the single root element of payload, keeping
// sibling order. Comments and processing instructions may surround the root;
// a second root or character data outside it is an error.
func readMarkupDocument(payload []byte) (mxj.MapSeq, error) {
	r := bytes.NewReader(bytes.TrimPrefix(payload, utf8BOM))
	var doc mxj.MapSeq
	for {
		more, err := skipMarkupSpace(r)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		m, err := mxj.NewMapXmlSeqReader(r)
		switch {
		case errors.Is(err, mxj.NoRoot):
			continue
		case err != nil:
			return nil, err
		case doc != nil:
			return nil, errors.New("content after the root element")
		}
		doc = m
	}
	if doc == nil {
		return nil, errors.New("no root element")
	}
	return doc, nil
}

// skipMarkupSpace advances r past whitespace and reports whether markup
// follows. Anything other than a tag or a prolog item is rejected.
func skipMarkupSpace(r *bytes.Reader) (bool, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return false, nil
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '<':
			next, err := r.ReadByte()
			if err != nil {
				return false, errors.New("unterminated tag")
			}
			if next == '/' {
				return false, errors.New("end tag outside the root element")
			}
			if _, err := r.Seek(-2, io.SeekCurrent); err != nil {
				return false, err
			}
			return true, nil
		default:
			offset := r.Size() - int64(r.Len()) - 1
			return false, fmt.Errorf("character data outside the root element at offset %d", offset)
		}
	}
}

// rootOf returns the name and content of the root element of doc.
func rootOf(doc mxj.MapSeq) (string, any) {
	for name, content := range doc {
		return name, content
	}
	return "", nil
}

// markupChild is one child element of decoded markup content.
type markupChild struct {
	name    string
	seq     int
	content any
}

// elementContent splits decoded element content into its character data and
// its child elements in document order. Attributes, comments and processing
// instructions are not children.
func elementContent(content any) (string, []markupChild) {
	m, ok := content.(map[string]any)
	if !ok {
		s, _ := content.(string)
		return s, nil
	}
	text, _ := m[textKey].(string)

	var children []markupChild
	for name, v := range m {
		if strings.HasPrefix(name, "#") {
			continue
		}
		items, isList := v.([]any)
		if !isList {
			items = []any{v}
		}
		for _, item := range items {
			var seq int
			if im, ok := item.(map[string]any); ok {
				seq, _ = im[seqKey].(int)
			}
			children = append(children, markupChild{name: name, seq: seq, content: item})
		}
	}
	slices.SortFunc(children, func(a, b markupChild) int { return cmp.Compare(a.seq, b.seq) })
	return text, children
}
