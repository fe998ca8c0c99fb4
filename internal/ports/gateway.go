package ports

import "context"

// FormResponse is what the remote returned for a form submission, after any
// redirects the transport followed.
type FormResponse struct {
	Status int
	URL    string
	Body   string
}

// SessionGateway performs authenticated HTTP calls against the remote site,
// carrying the cookie jar loaded at startup across every call of a batch.
type SessionGateway interface {
	Get(ctx context.Context, url string) (string, error)
	SubmitForm(ctx context.Context, url string, fields map[string]string) (FormResponse, error)
}
