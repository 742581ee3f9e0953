package email_testing

import (
	"github.com/stretchr/testify/mock"
)

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(to string, subject string, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
