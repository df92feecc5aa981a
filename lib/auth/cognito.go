package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"minecomply/lib/api"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

// DefaultRefreshSkew is how long before expiry a token is refreshed
const DefaultRefreshSkew = 60 * time.Second

// CognitoClientInterface defines the Cognito operations used by CognitoSession
type CognitoClientInterface interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

// CognitoSession issues and refreshes bearer tokens through a Cognito app
// client and persists them in Store. It implements api.TokenProvider.
type CognitoSession struct {
	Cognito      CognitoClientInterface
	ClientID     string
	ClientSecret string
	Store        SessionStore
	Logger       *logrus.Logger
	RefreshSkew  time.Duration
	Now          func() time.Time

	mu sync.Mutex
}

// SignIn authenticates with USER_PASSWORD_AUTH and stores the new session
func (s *CognitoSession) SignIn(ctx context.Context, username, password string) (*Session, error) {
	params := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if s.ClientSecret != "" {
		params["SECRET_HASH"] = s.secretHash(username)
	}

	output, err := s.Cognito.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(s.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		s.logger().WithFields(logrus.Fields{
			"username":  username,
			"operation": "SignIn",
			"error":     err.Error(),
		}).Warn("Cognito sign-in failed")
		return nil, &api.AuthenticationError{Reason: err.Error()}
	}
	if output.ChallengeName != "" {
		return nil, &api.AuthenticationError{Reason: fmt.Sprintf("sign-in requires unsupported challenge %s", output.ChallengeName)}
	}
	if output.AuthenticationResult == nil || aws.ToString(output.AuthenticationResult.AccessToken) == "" {
		return nil, &api.AuthenticationError{Reason: "sign-in returned no tokens"}
	}

	result := output.AuthenticationResult
	session := &Session{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresAt:    s.now().Add(time.Duration(result.ExpiresIn) * time.Second),
		Username:     username,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Store.Save(session); err != nil {
		return nil, err
	}

	s.logger().WithFields(logrus.Fields{
		"username":   username,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
		"operation":  "SignIn",
	}).Info("Signed in")
	return session, nil
}

// AccessToken returns a valid access token, refreshing it when it is about
// to expire. Without a stored session it fails with *api.AuthenticationError.
func (s *CognitoSession) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Store.Load()
	if err != nil {
		return "", &api.AuthenticationError{Reason: err.Error()}
	}
	if session == nil || session.AccessToken == "" {
		return "", &api.AuthenticationError{}
	}
	if s.now().Add(s.skew()).Before(session.ExpiresAt) {
		return session.AccessToken, nil
	}
	if session.RefreshToken == "" {
		return "", &api.AuthenticationError{Reason: "session expired"}
	}

	refreshed, err := s.refresh(ctx, session)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

// Current returns the stored session, or nil when signed out
func (s *CognitoSession) Current() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Store.Load()
}

// SignOut revokes the tokens server side (best effort) and clears the store
func (s *CognitoSession) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Store.Load()
	if err == nil && session != nil && session.AccessToken != "" {
		_, err := s.Cognito.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
			AccessToken: aws.String(session.AccessToken),
		})
		if err != nil {
			s.logger().WithError(err).Warn("Failed to revoke Cognito session, clearing local session anyway")
		}
	}
	return s.Store.Clear()
}

func (s *CognitoSession) refresh(ctx context.Context, session *Session) (*Session, error) {
	params := map[string]string{
		"REFRESH_TOKEN": session.RefreshToken,
	}
	if s.ClientSecret != "" {
		params["SECRET_HASH"] = s.secretHash(session.Username)
	}

	output, err := s.Cognito.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(s.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		s.logger().WithFields(logrus.Fields{
			"operation": "refresh",
			"error":     err.Error(),
		}).Warn("Cognito token refresh failed")
		return nil, &api.AuthenticationError{Reason: "refresh session: " + err.Error()}
	}
	if output.AuthenticationResult == nil || aws.ToString(output.AuthenticationResult.AccessToken) == "" {
		return nil, &api.AuthenticationError{Reason: "refresh returned no tokens"}
	}

	result := output.AuthenticationResult
	refreshed := *session
	refreshed.AccessToken = aws.ToString(result.AccessToken)
	if idToken := aws.ToString(result.IdToken); idToken != "" {
		refreshed.IDToken = idToken
	}
	// Cognito only rotates the refresh token when rotation is enabled
	if refreshToken := aws.ToString(result.RefreshToken); refreshToken != "" {
		refreshed.RefreshToken = refreshToken
	}
	refreshed.ExpiresAt = s.now().Add(time.Duration(result.ExpiresIn) * time.Second)

	if err := s.Store.Save(&refreshed); err != nil {
		return nil, err
	}

	s.logger().WithFields(logrus.Fields{
		"expires_at": refreshed.ExpiresAt.Format(time.RFC3339),
		"operation":  "refresh",
	}).Debug("Refreshed access token")
	return &refreshed, nil
}

func (s *CognitoSession) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(s.ClientSecret))
	mac.Write([]byte(username + s.ClientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *CognitoSession) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CognitoSession) skew() time.Duration {
	if s.RefreshSkew > 0 {
		return s.RefreshSkew
	}
	return DefaultRefreshSkew
}

func (s *CognitoSession) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
