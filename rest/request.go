// Package rest turns typed API calls into wire requests and executes
// them. The request builder is pure: given a Configuration and a Call
// it produces a RequestSpec without touching the network, so specs can
// be built without a transport and dispatched through any adapter.
package rest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/config"
	"github.com/otterscale/kubeclient/serializer"
)

// DefaultTimeout bounds a request unless the call overrides it.
const DefaultTimeout = 300 * time.Second

// Pair is one query parameter. Order is significant and preserved
// end to end.
type Pair struct {
	Key   string
	Value string
}

// Param is one pre-flattening query parameter; Value may be a scalar
// or a []string that expands into repeated pairs sharing the key.
type Param struct {
	Key   string
	Value any
}

// Call is the output of a typed API operation: the seven canonical
// inputs of a request plus response handling hints. Operations are
// pure functions returning a Call.
type Call struct {
	// Path is the resource path template with {name} placeholders.
	Path string
	// Method is the HTTP verb.
	Method string
	// PathParams fills the template placeholders.
	PathParams map[string]any
	// QueryParams is the ordered query parameter sequence.
	QueryParams []Param
	// HeaderParams are per-call headers (Accept, Content-Type, ...).
	HeaderParams map[string]string
	// PostParams are form fields; mutually exclusive with Body.
	PostParams map[string]any
	// AuthNames lists the Configuration auth settings to apply.
	AuthNames []string
	// Body is the request body: a domain object, a map, or nil.
	Body any
	// ResponseType names the registered type of the response body.
	ResponseType string
	// Preload asks Invoke to deserialize the response body one-shot.
	// Streaming consumers (watch, exec) leave it false.
	Preload bool
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// Upgrade marks calls whose semantics are a websocket upgrade.
	Upgrade bool
}

// RequestSpec is the finished wire request handed to a transport.
type RequestSpec struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   []Pair
	Body    []byte
	Timeout time.Duration
}

// BuildRequest composes a RequestSpec from a Configuration and a Call.
// It is deterministic and side-effect free: identical inputs yield an
// identical spec.
func BuildRequest(cfg *config.Configuration, call Call) (*RequestSpec, error) {
	if call.Body != nil && len(call.PostParams) > 0 {
		return nil, &apierrors.ValidationError{Reason: "body cannot be combined with post params"}
	}

	headers := make(map[string]string, len(call.HeaderParams)+len(cfg.DefaultHeaders)+1)
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}
	for k, v := range cfg.DefaultHeaders {
		headers[k] = v
	}
	for k, v := range call.HeaderParams {
		sane, err := paramString(v)
		if err != nil {
			return nil, err
		}
		headers[k] = sane
	}

	path := call.Path
	for k, v := range call.PathParams {
		sane, err := serializer.Marshal(v)
		if err != nil {
			return nil, err
		}
		s, err := paramString(sane)
		if err != nil {
			return nil, err
		}
		path = strings.ReplaceAll(path, "{"+k+"}", quote(s, cfg.SafeCharsForPathParam))
	}

	query, err := flattenQuery(call.QueryParams)
	if err != nil {
		return nil, err
	}

	query, err = applyAuth(cfg, headers, query, call.AuthNames)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch {
	case call.Body != nil:
		tree, err := serializer.Marshal(call.Body)
		if err != nil {
			return nil, err
		}
		body, err = json.Marshal(tree)
		if err != nil {
			return nil, &apierrors.SerializationError{Reason: "body is not JSON-encodable", Err: err}
		}
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/json"
		}
	case len(call.PostParams) > 0:
		form := make([]Pair, 0, len(call.PostParams))
		for k, v := range call.PostParams {
			sane, err := serializer.Marshal(v)
			if err != nil {
				return nil, err
			}
			s, err := paramString(sane)
			if err != nil {
				return nil, err
			}
			form = append(form, Pair{Key: k, Value: s})
		}
		body = []byte(encodeQuery(form))
		headers["Content-Type"] = "application/x-www-form-urlencoded"
	}

	url := cfg.Host + path
	if len(query) > 0 {
		url += "?" + encodeQuery(query)
	}

	timeout := call.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RequestSpec{
		Method:  strings.ToUpper(call.Method),
		URL:     url,
		Headers: headers,
		Query:   query,
		Body:    body,
		Timeout: timeout,
	}, nil
}

// flattenQuery sanitizes query values and expands sequence values into
// repeated pairs, preserving relative order.
func flattenQuery(params []Param) ([]Pair, error) {
	out := make([]Pair, 0, len(params))
	for _, p := range params {
		sane, err := serializer.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		switch seq := sane.(type) {
		case []any:
			for _, e := range seq {
				s, err := paramString(e)
				if err != nil {
					return nil, err
				}
				out = append(out, Pair{Key: p.Key, Value: s})
			}
		default:
			s, err := paramString(sane)
			if err != nil {
				return nil, err
			}
			out = append(out, Pair{Key: p.Key, Value: s})
		}
	}
	return out, nil
}

// applyAuth injects each named auth setting into headers or query per
// its declared location. Unknown locations are a configuration error.
func applyAuth(cfg *config.Configuration, headers map[string]string, query []Pair, names []string) ([]Pair, error) {
	for _, name := range names {
		setting, ok := cfg.AuthSetting(name)
		if !ok || setting.Value == "" {
			continue
		}
		switch setting.Location {
		case config.InHeader:
			headers[setting.Key] = setting.Value
		case config.InQuery:
			query = append(query, Pair{Key: setting.Key, Value: setting.Value})
		default:
			return nil, &apierrors.ConfigError{
				Reason: fmt.Sprintf("auth setting %q must be in query or header, not %q", name, setting.Location),
			}
		}
	}
	return query, nil
}

// paramString renders a sanitized parameter value the way it appears
// on the wire: booleans lowercase, numbers undecorated.
func paramString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}
	return "", &apierrors.ValidationError{Reason: fmt.Sprintf("cannot render %T as a parameter", v)}
}

// encodeQuery URL-encodes pairs preserving their order. url.Values is
// deliberately not used here: it sorts keys.
func encodeQuery(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(quote(p.Key, ""))
		b.WriteByte('=')
		b.WriteString(quote(p.Value, ""))
	}
	return b.String()
}

// quote percent-encodes s, leaving unreserved characters and the
// caller's safe set untouched.
func quote(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteString(fmt.Sprintf("%%%02X", c))
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}
