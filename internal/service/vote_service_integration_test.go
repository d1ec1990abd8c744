package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/internal/service"
	"github.com/pingboard/backend/internal/testutil"
	"github.com/pingboard/backend/pkg/logger"
)

// VoteServiceIntegrationTestSuite defines test suite
type VoteServiceIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	voteService *service.VoteService
	pingRepo    *repository.PingRepository
	author      *models.User
	voter       *models.User
	ping        *models.Ping
}

// SetupSuite runs before all tests
func (s *VoteServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	s.pingRepo = repository.NewPingRepository(s.testDB.DB)
	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.voteService = service.NewVoteService(s.pingRepo, userRepo)
}

// TearDownSuite runs after all tests
func (s *VoteServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test
func (s *VoteServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.author = testutil.CreateTestUser(s.T(), s.testDB.DB, "author", "author@example.com", "Test1234")
	s.voter = testutil.CreateTestUser(s.T(), s.testDB.DB, "voter", "voter@example.com", "Test1234")
	s.ping = testutil.CreateTestPing(s.T(), s.testDB.DB, s.author, "vote on me", models.CategoryMisc)
}

// TestUpvote tests a plain upvote
func (s *VoteServiceIntegrationTestSuite) TestUpvote() {
	count, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)

	up, err := s.pingRepo.HasUpvoted(s.ping.ID, s.voter.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), up)
}

// TestUpvoteIdempotent tests that repeating a vote changes nothing
func (s *VoteServiceIntegrationTestSuite) TestUpvoteIdempotent() {
	_, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)

	count, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

// TestVoteSwitch tests upvote/downvote mutual exclusion
func (s *VoteServiceIntegrationTestSuite) TestVoteSwitch() {
	count, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)

	// Switching sides removes the upvote in the same operation
	count, err = s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteDownvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(-1), count)

	up, err := s.pingRepo.HasUpvoted(s.ping.ID, s.voter.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), up)
	down, err := s.pingRepo.HasDownvoted(s.ping.ID, s.voter.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), down)

	// And back again
	count, err = s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

// TestRemoveVote tests removing an existing vote
func (s *VoteServiceIntegrationTestSuite) TestRemoveVote() {
	_, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteDownvote)
	assert.NoError(s.T(), err)

	count, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteRemove)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count)

	down, err := s.pingRepo.HasDownvoted(s.ping.ID, s.voter.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), down)
}

// TestRemoveVoteNoop tests remove when the user never voted
func (s *VoteServiceIntegrationTestSuite) TestRemoveVoteNoop() {
	count, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteRemove)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count)
}

// TestVoteCountAcrossUsers tests the aggregate count with opposing voters
func (s *VoteServiceIntegrationTestSuite) TestVoteCountAcrossUsers() {
	second := testutil.CreateTestUser(s.T(), s.testDB.DB, "second", "second@example.com", "Test1234")

	_, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)

	count, err := s.voteService.Vote(second.ID, s.ping.ID, service.VoteDownvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count)
}

// TestVoteOwnPing tests that authors may vote on their own pings
func (s *VoteServiceIntegrationTestSuite) TestVoteOwnPing() {
	count, err := s.voteService.Vote(s.author.ID, s.ping.ID, service.VoteUpvote)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

// TestVoteUnknownPing tests voting on a missing ping
func (s *VoteServiceIntegrationTestSuite) TestVoteUnknownPing() {
	_, err := s.voteService.Vote(s.voter.ID, uuid.New(), service.VoteUpvote)
	assert.ErrorIs(s.T(), err, service.ErrPingNotFound)
}

// TestInvalidVoteType tests the vote_type whitelist
func (s *VoteServiceIntegrationTestSuite) TestInvalidVoteType() {
	_, err := s.voteService.Vote(s.voter.ID, s.ping.ID, service.VoteType("sideways"))
	assert.ErrorIs(s.T(), err, service.ErrInvalidVoteType)
}

// TestSuite runs all tests in the suite
func TestVoteServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(VoteServiceIntegrationTestSuite))
}
