package quiz

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is a single multiple-choice question. Immutable once a session
// starts; sessions and attempts hold their own copies.
type Question struct {
	ID           string
	Prompt       string
	Options      [OptionCount]string
	CorrectIndex int // index into Options, [0, OptionCount)
	Explanation  string
}

// SubjectKind distinguishes what a quiz is about.
type SubjectKind int

const (
	// SubjectTopic is a curriculum topic quiz.
	SubjectTopic SubjectKind = iota
	// SubjectContent is a quiz over learner-supplied content.
	SubjectContent
)

// Subject identifies the thing a quiz is about: exactly one of a
// curriculum topic or a piece of uploaded content.
type Subject struct {
	Kind SubjectKind
	ID   string
}

// TopicSubject returns the subject for a curriculum topic.
func TopicSubject(topicID string) Subject {
	return Subject{Kind: SubjectTopic, ID: topicID}
}

// ContentSubject returns the subject for a piece of custom content.
func ContentSubject(contentID string) Subject {
	return Subject{Kind: SubjectContent, ID: contentID}
}

// Valid reports whether the subject names exactly one non-empty identity.
func (s Subject) Valid() bool {
	return s.ID != "" && (s.Kind == SubjectTopic || s.Kind == SubjectContent)
}

// Key returns a stable string key for ledger and registry lookups.
func (s Subject) Key() string {
	if s.Kind == SubjectContent {
		return "content:" + s.ID
	}
	return "topic:" + s.ID
}
