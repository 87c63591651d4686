package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerValue is the polymorphic answer payload: a single scalar for
// single-choice and free-text questions, or a list of selected options for
// multi-choice. Numeric and boolean inputs are normalized to their literal
// string form so stats bucket keys stay stable across JSON and BSON.
type AnswerValue struct {
	scalar string
	multi  []string
	set    bool
}

// ScalarAnswer wraps a single answer value.
func ScalarAnswer(v string) AnswerValue {
	return AnswerValue{scalar: v, set: true}
}

// MultiAnswer wraps a multi-choice selection.
func MultiAnswer(vals ...string) AnswerValue {
	if vals == nil {
		vals = []string{}
	}
	return AnswerValue{multi: vals, set: true}
}

// IsZero reports whether no answer was given.
func (a AnswerValue) IsZero() bool { return !a.set }

// IsMulti reports whether the answer is a multi-choice selection.
func (a AnswerValue) IsMulti() bool { return a.multi != nil }

// Scalar returns the single answer value. Empty for multi answers.
func (a AnswerValue) Scalar() string { return a.scalar }

// Values returns the selected options of a multi answer. Nil for scalars.
func (a AnswerValue) Values() []string { return a.multi }

// Keys returns the stats bucket keys for the answer: every element of a
// multi-choice selection counts as its own bucket, a scalar is a single
// bucket, and an unset answer contributes nothing.
func (a AnswerValue) Keys() []string {
	if !a.set {
		return nil
	}
	if a.multi != nil {
		return a.multi
	}
	return []string{a.scalar}
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	if a.multi != nil {
		return json.Marshal(a.multi)
	}
	return json.Marshal(a.scalar)
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch v := probe.(type) {
	case nil:
		*a = AnswerValue{}
	case string:
		*a = ScalarAnswer(v)
	case float64:
		*a = ScalarAnswer(formatNumber(v))
	case bool:
		*a = ScalarAnswer(strconv.FormatBool(v))
	case []any:
		vals := make([]string, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				vals = append(vals, it)
			case float64:
				vals = append(vals, formatNumber(it))
			default:
				return fmt.Errorf("unsupported answer element type %T", item)
			}
		}
		*a = MultiAnswer(vals...)
	default:
		return fmt.Errorf("unsupported answer type %T", probe)
	}
	return nil
}

func (a AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !a.set {
		return bsontype.Null, nil, nil
	}
	if a.multi != nil {
		return bson.MarshalValue(a.multi)
	}
	return bson.MarshalValue(a.scalar)
}

func (a *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*a = AnswerValue{}
	case bsontype.String:
		*a = ScalarAnswer(raw.StringValue())
	case bsontype.Int32:
		*a = ScalarAnswer(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.Int64:
		*a = ScalarAnswer(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Double:
		*a = ScalarAnswer(formatNumber(raw.Double()))
	case bsontype.Boolean:
		*a = ScalarAnswer(strconv.FormatBool(raw.Boolean()))
	case bsontype.Array:
		var items []any
		if err := raw.Unmarshal(&items); err != nil {
			return err
		}
		vals := make([]string, 0, len(items))
		for _, item := range items {
			switch it := item.(type) {
			case string:
				vals = append(vals, it)
			case int32:
				vals = append(vals, strconv.FormatInt(int64(it), 10))
			case int64:
				vals = append(vals, strconv.FormatInt(it, 10))
			case float64:
				vals = append(vals, formatNumber(it))
			default:
				return fmt.Errorf("unsupported answer element type %T", item)
			}
		}
		*a = MultiAnswer(vals...)
	default:
		return fmt.Errorf("cannot decode %s into an answer value", t)
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IntroResponse is one answered intro question.
type IntroResponse struct {
	QuestionText string         `json:"questionText" bson:"questionText"`
	FieldType    IntroFieldType `json:"fieldType,omitempty" bson:"fieldType,omitempty"`
	Answer       AnswerValue    `json:"answer" bson:"answer"`
}

// QuestionAnswer is one answered body question, keyed by the survey and
// question it targets.
type QuestionAnswer struct {
	SurveyID   string      `json:"surveyId" bson:"surveyId"`
	QuestionID string      `json:"questionId" bson:"questionId"`
	UserAnswer AnswerValue `json:"userAnswer" bson:"userAnswer"`
}

// Response is one respondent's submission. A single submission may answer
// questions across several surveys; each entry carries its own survey id.
type Response struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	UserID         string           `json:"userId" bson:"userId"`
	IntroResponses []IntroResponse  `json:"introResponses" bson:"introResponses"`
	Answers        []QuestionAnswer `json:"responses" bson:"responses"`
	SubmittedAt    time.Time        `json:"submittedAt" bson:"submittedAt"`
}
