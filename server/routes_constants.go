package server

// Route path constants. The callback path itself comes from the configured
// redirect URI.
const (
	// RouteFragmentSuffix is appended to the callback path for the page's POST.
	RouteFragmentSuffix = "/fragment"

	RouteHealth = "/healthz"

	callbackTemplate = "callback.html"
)
