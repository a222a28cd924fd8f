package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/mocks"
	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/random"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	key     APIKey
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom("testkey")

	key, err := GenerateKey(s.random)
	s.Require().NoError(err)
	s.key = key

	s.service, err = New(Config{APIKeyHash: key.Hash})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestGenerateKeyUsesRandom() {
	s.Equal("rs_testkey", s.key.Key)
	s.NotEqual(s.key.Key, s.key.Hash)

	s.random.Queue("second")
	next, err := GenerateKey(s.random)
	s.Require().NoError(err)
	s.Equal("rs_second", next.Key)
}

func (s *ServiceSuite) TestGenerateKeyWithCryptoRandom() {
	key, err := GenerateKey(random.New())
	s.Require().NoError(err)
	s.True(strings.HasPrefix(key.Key, KeyPrefix))
	s.Len(key.Key, len(KeyPrefix)+KeyLength)
}

func (s *ServiceSuite) TestGenerateKeyPropagatesRandomFailure() {
	exhausted := mocks.NewMockRandom()
	exhausted.Strict = true
	_, err := GenerateKey(exhausted)
	s.ErrorIs(err, mocks.ErrRandomExhausted)
}

func (s *ServiceSuite) TestAuthenticateAcceptsKey() {
	s.True(s.service.Enabled())
	s.NoError(s.service.Authenticate("rs_testkey"))
}

func (s *ServiceSuite) TestAuthenticateRejectsWrongKey() {
	s.ErrorIs(s.service.Authenticate("rs_other"), ErrInvalidAPIKey)
	s.ErrorIs(s.service.Authenticate(""), ErrInvalidAPIKey)
}

func (s *ServiceSuite) TestDisabledWithoutHash() {
	service, err := New(Config{})
	s.Require().NoError(err)
	s.False(service.Enabled())
	s.ErrorIs(service.Authenticate("rs_testkey"), ErrAuthNotConfigured)
}

func (s *ServiceSuite) TestNewRejectsMalformedHash() {
	_, err := New(Config{APIKeyHash: "not-a-hash"})
	s.Error(err)
}
