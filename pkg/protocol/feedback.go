package protocol

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type MatchType int

const (
	Miss    MatchType = 0
	Present MatchType = 1
	Hit     MatchType = 2
)

func (t MatchType) String() string {
	switch t {
	case Miss:
		return "miss"
	case Present:
		return "present"
	case Hit:
		return "hit"
	}
	return "unknown"
}

func (t MatchType) Valid() bool {
	return t >= Miss && t <= Hit
}

// Letter is sent as a one-character string. Numeric code points are accepted
// on receive, as the server may serialize letters as runes.
type Letter rune

func (l Letter) String() string {
	if l == 0 {
		return ""
	}
	return string(rune(l))
}

func (l Letter) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Letter) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if strings.HasPrefix(string(data), `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		runes := []rune(s)
		switch len(runes) {
		case 0:
			*l = 0
		case 1:
			*l = Letter(runes[0])
		default:
			return errors.Errorf("letter must be a single character, got %q", s)
		}
		return nil
	}

	var code int32
	if err := json.Unmarshal(data, &code); err != nil {
		return errors.Wrap(err, "letter must be a string or a code point")
	}
	*l = Letter(code)
	return nil
}

type LetterFeedback struct {
	Letter    Letter    `json:"letter"`
	Position  int       `json:"position"`
	MatchType MatchType `json:"matchType"`
}
