package common

// Response is the envelope around every successful answer.
type Response[T any] struct {
	Facade string `json:"facade,omitempty"`
	Data   *T     `json:"data"`
}

func NewResponse[T any](facade string, data *T) *Response[T] {
	return &Response[T]{
		Facade: facade,
		Data:   data,
	}
}
