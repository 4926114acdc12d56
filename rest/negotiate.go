package rest

import "strings"

// SelectHeaderAccept picks the Accept header value from the media
// types an operation offers. JSON wins when offered; otherwise every
// offer is sent, comma separated. An empty offer list leaves the
// header unset.
func SelectHeaderAccept(accepts []string) string {
	if len(accepts) == 0 {
		return ""
	}
	lowered := lower(accepts)
	for _, a := range lowered {
		if a == "application/json" {
			return "application/json"
		}
	}
	return strings.Join(lowered, ", ")
}

// SelectHeaderContentType picks the Content-Type from the media types
// an operation consumes. JSON wins when offered or when anything is
// accepted; an empty list defaults to JSON; otherwise the first offer
// is used.
func SelectHeaderContentType(contentTypes []string) string {
	if len(contentTypes) == 0 {
		return "application/json"
	}
	lowered := lower(contentTypes)
	for _, c := range lowered {
		if c == "application/json" || c == "*/*" {
			return "application/json"
		}
	}
	return lowered[0]
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
