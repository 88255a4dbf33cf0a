package client

import (
	"context"

	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/hackathon"
	"github.com/trezcool/zoezi/core/leaderboard"
	"github.com/trezcool/zoezi/core/user"
)

// UsersClient covers the current user's progress and public profiles.
type UsersClient struct {
	c *Client
}

// Stats returns nil (no error) for anonymous callers: a 401 here means
// "not logged in", not "broken".
func (u UsersClient) Stats(ctx context.Context) (*user.Stats, error) {
	var stats user.Stats
	found, err := u.c.get(ctx, opUserStats.Name, nil, nil, &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

// Profile returns nil (no error) when the user id is unknown.
func (u UsersClient) Profile(ctx context.Context, userID int) (*user.Profile, error) {
	var prof user.Profile
	found, err := u.c.get(ctx, opUserProfile.Name, Params{"userId": userID}, nil, &prof)
	if err != nil || !found {
		return nil, err
	}
	return &prof, nil
}

// LeaderboardClient is the typed surface of the ranking.
type LeaderboardClient struct {
	c *Client
}

func (l LeaderboardClient) Top(ctx context.Context) ([]leaderboard.Row, error) {
	var rows []leaderboard.Row
	if _, err := l.c.get(ctx, opLeaderboard.Name, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BadgesClient is the typed surface of the achievement catalog.
type BadgesClient struct {
	c *Client
}

func (b BadgesClient) List(ctx context.Context) ([]badge.Badge, error) {
	var badges []badge.Badge
	if _, err := b.c.get(ctx, opBadgesList.Name, nil, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// Mine returns the caller's earned badges; nil for anonymous callers.
func (b BadgesClient) Mine(ctx context.Context) ([]badge.UserBadge, error) {
	var earned []badge.UserBadge
	found, err := b.c.get(ctx, opUserBadges.Name, nil, nil, &earned)
	if err != nil || !found {
		return nil, err
	}
	return earned, nil
}

// HackathonsClient is the typed surface of community events.
type HackathonsClient struct {
	c *Client
}

func (h HackathonsClient) List(ctx context.Context) ([]hackathon.Hackathon, error) {
	var events []hackathon.Hackathon
	if _, err := h.c.get(ctx, opHackathonsList.Name, nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// AuthClient exchanges credentials for the session token carried by every
// subsequent request.
type AuthClient struct {
	c *Client
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Session struct {
	Token string `json:"token"`
}

// Login authenticates and installs the returned token on the client.
func (a AuthClient) Login(ctx context.Context, creds Credentials) (Session, error) {
	var sess Session
	if err := a.c.do(ctx, opAuthLogin.Name, nil, creds, &sess); err != nil {
		return Session{}, err
	}
	a.c.SetToken(sess.Token)
	return sess, nil
}
