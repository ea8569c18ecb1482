package oauthmodel

import "strings"

// FragmentResponse is the implicit flow result carried in the redirect fragment.
type FragmentResponse struct {
	AccessToken      string
	IDToken          string
	State            string
	Error            string
	ErrorDescription string
	Values           map[string]string
}

// Failed reports whether the provider returned an error instead of tokens.
func (f *FragmentResponse) Failed() bool {
	return f.Error != ""
}

// ParseFragment splits everything after '#' on '&' and then on the first '='.
// Values are returned exactly as they appear in the URL; they are not
// percent-decoded. Tokens are base64url so this only affects error_description.
func ParseFragment(rawRedirect string) (*FragmentResponse, error) {
	_, fragment, found := strings.Cut(rawRedirect, "#")
	if !found || fragment == "" {
		return nil, ErrMissingFragment
	}

	values := make(map[string]string)
	for _, pair := range strings.Split(fragment, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		values[key] = value
	}

	return &FragmentResponse{
		AccessToken:      values["access_token"],
		IDToken:          values["id_token"],
		State:            values["state"],
		Error:            values["error"],
		ErrorDescription: values["error_description"],
		Values:           values,
	}, nil
}
