package syntax

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformedResult indicates a result payload that is not a JSON object.
var ErrMalformedResult = errors.New("malformed highlight result")

// DecodeResult parses the JSON form of a highlight result:
//
//	{"highlights": [...], "warning": "...", "error": "..."}
//
// Every field is optional. A highlight is either an object
//
//	{"start": 0, "end": 5, "scope": "keyword", "conceal": ""}
//
// or a tuple in the tree-sitter capture style
//
//	[0, 5, "keyword", {"conceal": ""}]
//
// A "conceal" value marks the span concealable and supplies its
// replacement text. Entries without a usable range are skipped.
func DecodeResult(data []byte) (Result, error) {
	if !gjson.ValidBytes(data) {
		return Result{}, ErrMalformedResult
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Result{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedResult, root.Type)
	}

	var res Result
	res.Warning = root.Get("warning").String()
	res.Error = root.Get("error").String()

	highlights := root.Get("highlights")
	if highlights.IsArray() {
		entries := highlights.Array()
		res.Highlights = make([]Span, 0, len(entries))
		for _, entry := range entries {
			if span, ok := decodeSpan(entry); ok {
				res.Highlights = append(res.Highlights, span)
			}
		}
	}
	return res, nil
}

func decodeSpan(v gjson.Result) (Span, bool) {
	var span Span
	var conceal gjson.Result

	switch {
	case v.IsObject():
		start, end := v.Get("start"), v.Get("end")
		if start.Type != gjson.Number || end.Type != gjson.Number {
			return Span{}, false
		}
		span.Start = int(start.Int())
		span.End = int(end.Int())
		span.Scope = v.Get("scope").String()
		conceal = v.Get("conceal")
	case v.IsArray():
		fields := v.Array()
		if len(fields) < 3 || fields[0].Type != gjson.Number || fields[1].Type != gjson.Number {
			return Span{}, false
		}
		span.Start = int(fields[0].Int())
		span.End = int(fields[1].Int())
		span.Scope = fields[2].String()
		if len(fields) > 3 && fields[3].IsObject() {
			conceal = fields[3].Get("conceal")
		}
	default:
		return Span{}, false
	}

	if span.Empty() {
		return Span{}, false
	}
	if conceal.Exists() && conceal.Type != gjson.Null {
		span.Conceal = true
		span.Replacement = conceal.String()
	}
	return span, true
}

// EncodeResult renders a result in the object form accepted by DecodeResult.
func EncodeResult(res Result) ([]byte, error) {
	data, err := sjson.SetRawBytes([]byte(`{}`), "highlights", []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for _, span := range res.Highlights {
		entry, err := encodeSpan(span)
		if err != nil {
			return nil, err
		}
		if data, err = sjson.SetRawBytes(data, "highlights.-1", entry); err != nil {
			return nil, err
		}
	}
	if res.Warning != "" {
		if data, err = sjson.SetBytes(data, "warning", res.Warning); err != nil {
			return nil, err
		}
	}
	if res.Error != "" {
		if data, err = sjson.SetBytes(data, "error", res.Error); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func encodeSpan(span Span) ([]byte, error) {
	entry, err := sjson.SetBytes([]byte(`{}`), "start", span.Start)
	if err != nil {
		return nil, err
	}
	if entry, err = sjson.SetBytes(entry, "end", span.End); err != nil {
		return nil, err
	}
	if entry, err = sjson.SetBytes(entry, "scope", span.Scope); err != nil {
		return nil, err
	}
	if span.Conceal {
		if entry, err = sjson.SetBytes(entry, "conceal", span.Replacement); err != nil {
			return nil, err
		}
	}
	return entry, nil
}
