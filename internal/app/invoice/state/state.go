// Package state defines what a mutation attempt hands back to the form layer.
package state

// MutationState is the payload a form is re-rendered with after a failed
// mutation. Errors present means validation failed and Message explains the
// category; Message alone describes a persistence failure.
type MutationState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message *string             `json:"message,omitempty"`
}

// Outcome is the result of a mutation: either a state to re-render the form
// with, or a redirect that ends the interaction.
type Outcome struct {
	State    *MutationState
	Redirect string
}

// IsRedirect reports whether the interaction should move to another view.
func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

// Invalid reports field errors together with an explanatory message.
func Invalid(errs map[string][]string, message string) Outcome {
	return Outcome{State: &MutationState{Errors: errs, Message: &message}}
}

// Failed reports a message-only failure.
func Failed(message string) Outcome {
	return Outcome{State: &MutationState{Message: &message}}
}

// RedirectTo ends the interaction and sends the client to path.
func RedirectTo(path string) Outcome {
	return Outcome{Redirect: path}
}
