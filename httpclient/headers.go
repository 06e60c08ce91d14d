package httpclient

import "net/http"

// ComposeHeaders builds the header set for one request. Keys are returned in
// canonical form so caller overrides replace defaults regardless of case.
// Caller-supplied Content-Type is dropped for multipart requests because the
// boundary is chosen by the transport.
func ComposeHeaders(cfg Config, override map[string]string, hasBinaryBody, hasMultipart bool) map[string]string {
	headers := map[string]string{
		HeaderAccept: ContentTypeJSON,
		HeaderAPIKey: cfg.APIKey,
	}

	if !hasBinaryBody && !hasMultipart {
		headers[HeaderContentType] = ContentTypeJSON
	}

	if cfg.DisableRequestLogging {
		headers[HeaderNoRequestLog] = "true"
	}

	mergeHeaders(headers, cfg.Headers, hasMultipart)
	mergeHeaders(headers, override, hasMultipart)

	return headers
}

func mergeHeaders(dst, src map[string]string, hasMultipart bool) {
	for key, value := range src {
		canonical := http.CanonicalHeaderKey(key)
		if hasMultipart && canonical == HeaderContentType {
			continue
		}

		dst[canonical] = value
	}
}
