package rest

import "testing"

func TestSelectHeaderAccept(t *testing.T) {
	tests := []struct {
		accepts []string
		want    string
	}{
		{nil, ""},
		{[]string{}, ""},
		{[]string{"application/json"}, "application/json"},
		{[]string{"application/yaml", "APPLICATION/JSON"}, "application/json"},
		{[]string{"application/yaml", "application/vnd.kubernetes.protobuf"}, "application/yaml, application/vnd.kubernetes.protobuf"},
	}
	for _, tt := range tests {
		if got := SelectHeaderAccept(tt.accepts); got != tt.want {
			t.Errorf("SelectHeaderAccept(%v) = %q, want %q", tt.accepts, got, tt.want)
		}
	}
}

func TestSelectHeaderContentType(t *testing.T) {
	tests := []struct {
		contentTypes []string
		want         string
	}{
		{nil, "application/json"},
		{[]string{}, "application/json"},
		{[]string{"application/yaml", "application/json"}, "application/json"},
		{[]string{"application/yaml", "*/*"}, "application/json"},
		{[]string{"application/strategic-merge-patch+json"}, "application/strategic-merge-patch+json"},
		{[]string{"application/yaml", "text/plain"}, "application/yaml"},
	}
	for _, tt := range tests {
		if got := SelectHeaderContentType(tt.contentTypes); got != tt.want {
			t.Errorf("SelectHeaderContentType(%v) = %q, want %q", tt.contentTypes, got, tt.want)
		}
	}
}
