package sse

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event shape")

// marshals an event to its wire JSON
func Encode(ev Event) ([]byte, error) {
	var v any

	switch e := ev.(type) {
	case Chunk:
		v = chunkWire{Chunk: e.Text, IsHelpfulResponse: e.IsHelpfulResponse}
	case LanguageDetected:
		v = languageWire{LanguageDetected: true, Language: e.Language, Framework: e.Framework, DisplayName: e.DisplayName}
	case TokenLimit:
		v = tokenLimitWire{TokenLimitReached: true, Message: e.Message}
	case Done:
		v = doneWire{Done: true, IsHelpfulResponse: e.IsHelpfulResponse, TokenLimitReached: e.TokenLimitReached}
	case Error:
		v = errorWire{Error: e.Message}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	return json.Marshal(v)
}

// parses wire JSON into one of the known events
func Decode(data []byte) (Event, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid event payload: %w", err)
	}

	switch {
	case p.Error != nil:
		return Error{Message: *p.Error}, nil
	case p.Done != nil && *p.Done:
		return Done{IsHelpfulResponse: deref(p.IsHelpfulResponse), TokenLimitReached: deref(p.TokenLimitReached)}, nil
	case p.LanguageDetected != nil && *p.LanguageDetected:
		return LanguageDetected{Language: derefString(p.Language), Framework: derefString(p.Framework), DisplayName: derefString(p.DisplayName)}, nil
	case p.Chunk != nil:
		return Chunk{Text: *p.Chunk, IsHelpfulResponse: deref(p.IsHelpfulResponse)}, nil
	case p.TokenLimitReached != nil && *p.TokenLimitReached:
		return TokenLimit{Message: derefString(p.Message)}, nil
	default:
		return nil, ErrUnknownEvent
	}
}

func deref(b *bool) bool {
	return b != nil && *b
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
