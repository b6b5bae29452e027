package validation

import (
	"net/url"

	"blogify/errors"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLink checks the submitted link is present and is an http(s) URL.
// It deliberately does not require a parseable YouTube video ID: a link
// without one still enters the pipeline and the title resolver substitutes
// its sentinel.
func (v *Validator) ValidateLink(link string) error {
	const op = "Validator.ValidateLink"

	if link == "" {
		return errors.InvalidInput(op, nil, "Invalid data sent")
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid data sent")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.InvalidInput(op, nil, "Invalid data sent")
	}

	return nil
}
