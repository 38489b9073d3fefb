package skill

import "github.com/seu-repo/dogwalk-skill/internal/domain"

// Predicates never panic: a nil envelope or a missing substructure is simply no match.

// IsRequestType reports whether env is a request of the given type.
func IsRequestType(env *domain.RequestEnvelope, t domain.RequestType) bool {
	return env.Type() == t
}

// IsIntentName reports whether env is an IntentRequest for the given intent.
func IsIntentName(env *domain.RequestEnvelope, name string) bool {
	return IntentName(env) == name && IsRequestType(env, domain.RequestTypeIntent)
}

// IsAPIRequest reports whether env is a Dialog.API.Invoked request for apiName.
func IsAPIRequest(env *domain.RequestEnvelope, apiName string) bool {
	return APIName(env) == apiName && IsRequestType(env, domain.RequestTypeAPIInvoked)
}

// IntentName returns the intent name, or "" when env carries no intent.
func IntentName(env *domain.RequestEnvelope) string {
	if env == nil || env.Request == nil || env.Request.Intent == nil {
		return ""
	}
	return env.Request.Intent.Name
}

// APIName returns the invoked API name, or "" when env carries no API request.
func APIName(env *domain.RequestEnvelope) string {
	if env == nil || env.Request == nil || env.Request.APIRequest == nil {
		return ""
	}
	return env.Request.APIRequest.Name
}
