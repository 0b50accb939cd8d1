package tools

import (
	"context"
	"net/http"
	"time"
)

type Option func(*Options)

type Options struct {
	Client  *http.Client
	Context context.Context
}

func WithClient(client *http.Client) Option {
	return func(o *Options) {
		o.Client = client
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
