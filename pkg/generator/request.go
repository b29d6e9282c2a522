package generator

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Request is the concrete HTTP request a snippet is generated for
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// RequestFromHTTP captures an *http.Request, consuming its body
func RequestFromHTTP(r *http.Request) (*Request, error) {
	req := &Request{
		Method:  r.Method,
		URL:     r.URL.String(),
		Headers: r.Header.Clone(),
	}
	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Body = body
	}
	return req, nil
}

// ParseRawRequest parses a request written in HTTP/1.1 message form:
//
//	POST /v1.0/users HTTP/1.1
//	Host: graph.microsoft.com
//	Content-Type: application/json
//
//	{"accountEnabled": true}
//
// A request line without a protocol version is accepted. When the target is a
// path, the URL is rebuilt from the Host header.
func ParseRawRequest(raw []byte) (*Request, error) {
	raw = bytes.Clone(bytes.TrimLeft(raw, " \t\r\n"))
	line, rest, _ := bytes.Cut(raw, []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 2 {
		line = []byte(fields[0] + " " + fields[1] + " HTTP/1.1")
		raw = append(append(line, '\n'), rest...)
	}
	// http.ReadRequest wants a terminating blank line even without a body
	if !bytes.Contains(raw, []byte("\n\n")) && !bytes.Contains(raw, []byte("\r\n\r\n")) {
		raw = append(raw, '\n', '\n')
	}

	r, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	// ReadRequest only honours Content-Length; take whatever follows the headers
	if r.ContentLength <= 0 && r.Body != nil {
		r.Body = io.NopCloser(bytes.NewReader(bodyAfterHeaders(raw)))
	}
	req, err := RequestFromHTTP(r)
	if err != nil {
		return nil, err
	}
	if !r.URL.IsAbs() && r.Host != "" {
		req.URL = "https://" + r.Host + r.URL.RequestURI()
	}
	req.Body = bytes.TrimSpace(req.Body)
	return req, nil
}

func bodyAfterHeaders(raw []byte) []byte {
	if _, body, ok := bytes.Cut(raw, []byte("\r\n\r\n")); ok {
		return body
	}
	if _, body, ok := bytes.Cut(raw, []byte("\n\n")); ok {
		return body
	}
	return nil
}
