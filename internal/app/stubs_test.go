package app

import (
	"context"
	"errors"
	"testing"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"
)

type stubFormatter struct {
	closed   bool
	closeErr error
}

func (s *stubFormatter) Format(ctx context.Context, req *llm.FormatRequest) (*llm.FormatResult, error) {
	return nil, llm.ErrFormatterUnavailable
}

func (s *stubFormatter) Validate(ctx context.Context, result *llm.FormatResult) (*llm.FormatResult, error) {
	return nil, llm.ErrInvalidFormat
}

func (s *stubFormatter) Close() error {
	s.closed = true
	return s.closeErr
}

// useStubFormatter swaps formatterFactory for the duration of the test.
func useStubFormatter(t testing.TB, stub *stubFormatter, err error) {
	orig := formatterFactory
	formatterFactory = func(ctx context.Context) (llm.Formatter, func() error, error) {
		if err != nil {
			return nil, nil, err
		}
		return stub, stub.Close, nil
	}
	t.Cleanup(func() { formatterFactory = orig })
}

var errStub = errors.New("stub failure")
