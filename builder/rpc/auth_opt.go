package rpc

import "net/http"

type RequestOption interface {
	Set(req *http.Request)
}

type withHeader struct {
	key   string
	value string
}

// WithHeader sets a fixed header on every request.
func WithHeader(key, value string) RequestOption {
	return withHeader{key: key, value: value}
}

func (h withHeader) Set(req *http.Request) {
	req.Header.Set(h.key, h.value)
}
