package screens

import (
	"context"
	"minecomply/lib/api"
	"minecomply/lib/models"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Dashboard_Load(t *testing.T) {
	//Arrange
	repository := &MockComplianceRepository{Me: &models.Me{
		User: models.UserSummary{ID: "u-1"},
		Projects: []models.Project{
			{ID: "p-1", Count: models.ProjectCount{Submissions: 2}},
			{ID: "p-2", Count: models.ProjectCount{Submissions: 3}},
		},
	}}
	screen := &DashboardScreen{Compliance: repository, Logger: logrus.New()}

	//Act
	screen.Load(context.Background())

	//Assert
	assert.Equal(t, StateSuccess, screen.State())
	require.NotNil(t, screen.Me())
	assert.Equal(t, "u-1", screen.Me().User.ID)
	assert.Equal(t, 5, screen.TotalSubmissions())
}

func Test_Dashboard_LoadUnauthenticated(t *testing.T) {
	//Arrange
	repository := &MockComplianceRepository{MeErr: &api.AuthenticationError{}}
	screen := &DashboardScreen{Compliance: repository, Logger: logrus.New()}

	//Act
	screen.Load(context.Background())

	//Assert
	assert.Equal(t, StateError, screen.State())
	assert.Equal(t, "Failed to load dashboard", screen.Notice().Title)
	assert.Equal(t, "no access token found - user may not be authenticated", screen.Notice().Message)
	assert.Nil(t, screen.Me())
	assert.Equal(t, 0, screen.TotalSubmissions())
}
