package domain

// ClassifyInput is what the intent classifier sees for one prompt.
type ClassifyInput struct {
	Original          string
	Literal           string
	HasDoubleNegation bool
	SourceLocale      string
}

// Classification is the structured answer of the intent classifier. Action is
// raw provider output and still needs NormalizeAction.
type Classification struct {
	Action        string `json:"action"`
	Subject       string `json:"subject"`
	RefinedPrompt string `json:"refined_prompt"`
}

// InpaintInput drives a masked (or mask-free) regeneration.
type InpaintInput struct {
	Image          *Upload
	Mask           *Upload
	Prompt         string
	NegativePrompt string
	Strength       float64
	OutputFormat   string
}

// SearchReplaceInput drives an object replacement located by a text query.
type SearchReplaceInput struct {
	Image          *Upload
	SearchPrompt   string
	Prompt         string
	NegativePrompt string
	OutputFormat   string
}

// EditedImage is a provider answer before assembly. Exactly one of Data and
// Base64 is expected to be set; Base64 may carry a data URL prefix.
type EditedImage struct {
	Data         []byte
	Base64       string
	OutputFormat string
	FinishReason string
	Seed         string
}
