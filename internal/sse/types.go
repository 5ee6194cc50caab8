package sse

// one server-sent event; the set of variants is closed
type Event interface {
	isEvent()
}

// a piece of generated text
type Chunk struct {
	Text              string
	IsHelpfulResponse bool
}

// the language detected for unit-test generation
type LanguageDetected struct {
	Language    string
	Framework   string
	DisplayName string
}

// the token budget ran out; the stream still ends with Done
type TokenLimit struct {
	Message string
}

// terminal success
type Done struct {
	IsHelpfulResponse bool
	TokenLimitReached bool
}

// terminal failure
type Error struct {
	Message string
}

func (Chunk) isEvent()            {}
func (LanguageDetected) isEvent() {}
func (TokenLimit) isEvent()       {}
func (Done) isEvent()             {}
func (Error) isEvent()            {}

// reports whether no event may follow ev
func IsTerminal(ev Event) bool {
	switch ev.(type) {
	case Done, *Done, Error, *Error:
		return true
	default:
		return false
	}
}

type chunkWire struct {
	Chunk             string `json:"chunk"`
	IsHelpfulResponse bool   `json:"isHelpfulResponse"`
}

type languageWire struct {
	LanguageDetected bool   `json:"languageDetected"`
	Language         string `json:"language"`
	Framework        string `json:"framework"`
	DisplayName      string `json:"displayName"`
}

type tokenLimitWire struct {
	TokenLimitReached bool   `json:"tokenLimitReached"`
	Message           string `json:"message"`
}

type doneWire struct {
	Done              bool `json:"done"`
	IsHelpfulResponse bool `json:"isHelpfulResponse"`
	TokenLimitReached bool `json:"tokenLimitReached"`
}

type errorWire struct {
	Error string `json:"error"`
}

// union of every wire field, used when decoding
type payload struct {
	Chunk             *string `json:"chunk"`
	IsHelpfulResponse *bool   `json:"isHelpfulResponse"`
	LanguageDetected  *bool   `json:"languageDetected"`
	Language          *string `json:"language"`
	Framework         *string `json:"framework"`
	DisplayName       *string `json:"displayName"`
	TokenLimitReached *bool   `json:"tokenLimitReached"`
	Message           *string `json:"message"`
	Done              *bool   `json:"done"`
	Error             *string `json:"error"`
}
