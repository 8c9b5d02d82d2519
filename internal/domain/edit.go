package domain

import "strings"

// Language is the prompt language accepted by the edit pipeline.
type Language string

const (
	LanguageEnglish   Language = "en"
	LanguageAfrikaans Language = "af"
)

// SupportedLanguages lists the accepted language codes in display order.
var SupportedLanguages = []Language{LanguageEnglish, LanguageAfrikaans}

// ParseLanguage returns the language for code and whether it is supported.
func ParseLanguage(code string) (Language, bool) {
	switch Language(code) {
	case LanguageEnglish, LanguageAfrikaans:
		return Language(code), true
	}
	return "", false
}

// Action is the normalized edit intent derived from a prompt.
type Action string

const (
	ActionRemove Action = "REMOVE"
	ActionAdd    Action = "ADD"
	ActionChange Action = "CHANGE"
)

// NormalizeAction maps free-form provider output onto a known action. Unknown
// values yield the empty action.
func NormalizeAction(raw string) Action {
	switch Action(strings.ToUpper(strings.TrimSpace(raw))) {
	case ActionRemove:
		return ActionRemove
	case ActionAdd:
		return ActionAdd
	case ActionChange:
		return ActionChange
	}
	return ""
}

// DefaultStrength is used by the inpaint call when the request leaves it unset.
const DefaultStrength = 0.8

// Upload is one binary form part.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Size returns the payload length in bytes.
func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Data))
}

// Dimensions returns the decoded pixel size, or zeros when unknown.
func (u *Upload) Dimensions() (int, int) {
	if u == nil {
		return 0, 0
	}
	return u.Width, u.Height
}

// EditRequest is one validated edit intent. Action, Subject and NegativePrompt
// are only populated after intent resolution.
type EditRequest struct {
	Image          *Upload
	Mask           *Upload
	Prompt         string
	Language       Language
	Strength       *float64
	NegativePrompt string
	Action         Action
	Subject        string
}

// EffectiveStrength returns the requested strength or DefaultStrength.
func (r EditRequest) EffectiveStrength() float64 {
	if r.Strength == nil {
		return DefaultStrength
	}
	return *r.Strength
}

// IntentResolution is the translated and classified view of a prompt.
type IntentResolution struct {
	Original          string `json:"original"`
	Translated        string `json:"translated"`
	Action            Action `json:"action,omitempty"`
	Subject           string `json:"subject,omitempty"`
	HasDoubleNegation bool   `json:"-"`
	SourceLocale      string `json:"-"`
	TargetLocale      string `json:"-"`
}

// EditOutcome is the result of the downstream image edit. Build it with
// SucceededOutcome or FailedOutcome so exactly one side is populated.
type EditOutcome struct {
	Success     bool
	ImageBase64 string
	ContentType string
	Error       string
	Code        string
	Kind        Kind
}

func SucceededOutcome(imageBase64, contentType string) EditOutcome {
	return EditOutcome{Success: true, ImageBase64: imageBase64, ContentType: contentType}
}

func FailedOutcome(err *Error) EditOutcome {
	if err == nil {
		err = Internal(nil)
	}
	return EditOutcome{Error: err.PublicMessage(), Code: err.Code, Kind: err.Kind}
}
