package dnsclient

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify based Client for collector tests.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Query(ctx context.Context, server, name string,
	qtype uint16, opts Options,
) (*Answer, error) {
	args := m.Called(ctx, server, name, qtype, opts)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Answer), args.Error(1)
}
