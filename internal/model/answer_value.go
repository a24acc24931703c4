package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type answerKind int

const (
	answerNone answerKind = iota
	answerBool
	answerString
	answerNumber
	answerRaw
)

// AnswerValue is the correct-answer payload of a question and the answer
// payload of a submission. Depending on question type and on how the quiz
// was authored, the same logical value may arrive as a native bool, a
// string ("True", "false"), or a number, so the concrete JSON kind is kept
// and re-emitted unchanged on marshal.
type AnswerValue struct {
	kind answerKind
	b    bool
	s    string
	n    float64
	raw  json.RawMessage
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{kind: answerBool, b: b}
}

func StringAnswer(s string) AnswerValue {
	return AnswerValue{kind: answerString, s: s}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{kind: answerNumber, n: n}
}

func (v AnswerValue) IsZero() bool {
	return v.kind == answerNone
}

// Normalized canonicalizes the value to a lowercase string for grading:
// bools become the literals "true"/"false", everything else is its string
// form lowercased. No whitespace trimming, no numeric coercion.
func (v AnswerValue) Normalized() string {
	switch v.kind {
	case answerBool:
		if v.b {
			return "true"
		}
		return "false"
	case answerString:
		return strings.ToLower(v.s)
	case answerNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case answerRaw:
		return strings.ToLower(string(v.raw))
	default:
		return ""
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var any interface{}
	if err := json.Unmarshal(data, &any); err != nil {
		return err
	}

	switch val := any.(type) {
	case bool:
		*v = AnswerValue{kind: answerBool, b: val}
	case string:
		*v = AnswerValue{kind: answerString, s: val}
	case float64:
		*v = AnswerValue{kind: answerNumber, n: val}
	case nil:
		*v = AnswerValue{}
	default:
		// Non-scalar payloads are kept verbatim; they only ever
		// compare equal to themselves.
		*v = AnswerValue{kind: answerRaw, raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case answerBool:
		return json.Marshal(v.b)
	case answerString:
		return json.Marshal(v.s)
	case answerNumber:
		return json.Marshal(v.n)
	case answerRaw:
		return append(json.RawMessage(nil), v.raw...), nil
	default:
		return []byte("null"), nil
	}
}

// Value stores the answer as its JSON encoding.
func (v AnswerValue) Value() (driver.Value, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *AnswerValue) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = AnswerValue{}
		return nil
	case []byte:
		return v.UnmarshalJSON(data)
	case string:
		return v.UnmarshalJSON([]byte(data))
	default:
		return fmt.Errorf("cannot scan %T into AnswerValue", src)
	}
}
