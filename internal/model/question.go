package model

// QuestionKind defines how a question is answered
type QuestionKind string

const (
	QuestionKindSingleChoice QuestionKind = "SINGLE_CHOICE" // one option from a fixed set
	QuestionKindMultiChoice  QuestionKind = "MULTI_CHOICE"  // any number of options from a fixed set
	QuestionKindFreeText     QuestionKind = "FREE_TEXT"     // unconstrained text
)

// Valid reports whether k is a known question kind.
func (k QuestionKind) Valid() bool {
	switch k {
	case QuestionKindSingleChoice, QuestionKindMultiChoice, QuestionKindFreeText:
		return true
	}
	return false
}

// Question is a body question embedded in a survey.
// Non-free-text kinds must carry a non-empty option set.
type Question struct {
	ID      string       `json:"id" bson:"_id,omitempty"`
	Text    string       `json:"text" bson:"text"`
	Kind    QuestionKind `json:"kind" bson:"kind"`
	Options []string     `json:"options,omitempty" bson:"options,omitempty"`
}

// IntroFieldType defines the input type of an intro question
type IntroFieldType string

const (
	IntroFieldText   IntroFieldType = "TEXT"
	IntroFieldNumber IntroFieldType = "NUMBER"
	IntroFieldEmail  IntroFieldType = "EMAIL"
	IntroFieldDate   IntroFieldType = "DATE"
	IntroFieldSelect IntroFieldType = "SELECT" // single selection from Options
)

// Valid reports whether t is a known intro field type.
func (t IntroFieldType) Valid() bool {
	switch t {
	case IntroFieldText, IntroFieldNumber, IntroFieldEmail, IntroFieldDate, IntroFieldSelect:
		return true
	}
	return false
}

// IntroQuestion collects respondent metadata (age, contact, ...) once per
// submission, separate from the survey's body questions.
type IntroQuestion struct {
	Text      string         `json:"text" bson:"text"`
	FieldType IntroFieldType `json:"fieldType" bson:"fieldType"`
	Options   []string       `json:"options,omitempty" bson:"options,omitempty"`
	Required  bool           `json:"required" bson:"required"`
}
