package http

import (
	"github.com/sirupsen/logrus"
)

type Option func(*Options)

type Options struct {
	Address string
	Logger  *logrus.Entry
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: ":8080",
		Logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
