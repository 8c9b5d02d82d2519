package edit

import "promptglot/internal/domain"

// Route names the provider endpoint an edit is sent to.
type Route string

const (
	RouteInpaint          Route = "inpaint"
	RouteSearchAndReplace Route = "search_and_replace"
)

// ApplyIntent copies a resolved intent onto the request. A REMOVE with a
// subject also becomes the negative prompt so both routes carry it.
func ApplyIntent(req *domain.EditRequest, intent *domain.IntentResolution) {
	if req == nil || intent == nil {
		return
	}
	if intent.Translated != "" {
		req.Prompt = intent.Translated
	}
	req.Action = intent.Action
	req.Subject = intent.Subject
	if intent.Action == domain.ActionRemove && intent.Subject != "" {
		req.NegativePrompt = intent.Subject
	}
}

// SelectRoute picks search-and-replace only for a mask-less REMOVE with a
// known subject. Everything else is inpainted.
func SelectRoute(req domain.EditRequest) Route {
	if req.Action == domain.ActionRemove && req.Subject != "" && req.Mask == nil {
		return RouteSearchAndReplace
	}
	return RouteInpaint
}
