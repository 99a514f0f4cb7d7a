package interaction

import (
	"context"
	"errors"
	"net/url"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
)

var _ restcli.Transport = (*TransportMock)(nil)

type transportCall struct {
	method string
	path   string
	query  url.Values
	body   string
}

type transportResponse struct {
	body string
	err  error
}

// TransportMock records every call and answers with the queued responses in order.
type TransportMock struct {
	calls     []transportCall
	responses []transportResponse
}

func (m *TransportMock) respond(body string) *TransportMock {
	m.responses = append(m.responses, transportResponse{body: body})
	return m
}

func (m *TransportMock) fail(err error) *TransportMock {
	m.responses = append(m.responses, transportResponse{err: err})
	return m
}

func (m *TransportMock) next(call transportCall) ([]byte, error) {
	m.calls = append(m.calls, call)
	if len(m.responses) == 0 {
		return nil, errors.New("unexpected call")
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func (m *TransportMock) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	return m.next(transportCall{method: "GET", path: path, query: query})
}

func (m *TransportMock) Post(_ context.Context, path string, body []byte) ([]byte, error) {
	return m.next(transportCall{method: "POST", path: path, body: string(body)})
}

func (m *TransportMock) Update(_ context.Context, path string, body []byte) ([]byte, error) {
	return m.next(transportCall{method: "PUT", path: path, body: string(body)})
}
